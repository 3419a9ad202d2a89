// Package clean implements the metadata-stripping strategies and the
// dispatch policy that sequences them.
//
// Every strategy shares one contract: attempt to strip the file in place and
// report plain success or failure, never an error. Collaborator failures
// (non-zero exits, undecodable files, I/O trouble) are logged and converted
// to false at the strategy boundary so a single bad file can never abort a
// batch. Mutating strategies write a complete replacement beside the
// original and swap it in with a single rename.
//
// The Dispatcher is built once per run from the dependency availability
// snapshot: exiftool is tried first for every file when present, video files
// always go through ffmpeg with one copy-to-reencode escalation, and the
// compiled-in rewrites cover image, pdf, office, and audio files when the
// general tool is missing or fails.
package clean
