// Package macro provides vi-style macro recording and playback.
//
// A macro is a recorded sequence of key events stored in a register
// (a-z or 0-9; uppercase names append). Recording starts with
// StartRecording and ends with StopRecording. Keys that ended the
// recording, such as the closing "q", are removed with Trim before
// stopping.
//
// Playback does not call back into the engine. Player.Expand returns the
// events to replay and the caller feeds them through its own key loop,
// so a macro never dispatches keys while another key is being handled.
//
// Capture collects the text typed during one Insert session. It feeds the
// last-inserted register and strips the keys of a soft escape alias
// ("jj") that ended the session.
//
// Macros can be exported to and imported from vi key notation
// ("ihello<Esc>") for session storage.
package macro
