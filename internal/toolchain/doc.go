// Package toolchain locates the FFmpeg binaries and installs them on demand.
//
// Ensure runs three probes in order: an "ffmpeg -version" launch through PATH,
// a check for <install_dir>/bin/ffmpeg, and finally a download of the
// configured ZIP bundle that is unpacked into install_dir. The resolved
// Location is passed by value to every component that launches FFmpeg; the
// process PATH is never modified.
package toolchain
