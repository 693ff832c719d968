// Package ingest downloads the audio behind the URLs listed in the input
// directory's manifest before transcoding begins.
//
// Each URL is handed to an Extractor (yt-dlp through go-ytdlp) that writes
// the audio into the input directory. A failed URL is logged and recorded in
// the Report; the remaining URLs are still attempted.
package ingest
