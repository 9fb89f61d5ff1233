package main

// The fmt command feeds trees from whatever front end registered itself with
// driver.RegisterFrontEnd. The parser ships as a separate component; builds
// that bundle one link it in with a blank import here:
//
//	import _ "flux/internal/parser/register"
//
// Without a registration, fmt reports that no front end is wired in.
