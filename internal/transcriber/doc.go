// Package transcriber turns media files into ordered transcript segments.
// The speech model sits behind the Backend interface; the default binding
// shells out to a whisper executable and parses its JSON output, and tests
// inject fakes.
package transcriber
