// Package ui contains the raw-terminal session loop that powers the menus.
// The package is structured so the Session type focuses on event
// orchestration, while dedicated helpers own rendering, the history
// overlay, and the menu/chat state machines.
//
// Event flow:
//   - Run pulls one key.Event at a time from the configured key.Source,
//     asking for literal decoding whenever the chat input line owns the
//     keyboard.
//   - apply performs exactly one state transition per event. Transitions
//     that change nothing leave the dirty flag unset, so the screen is
//     only repainted when state actually moved.
//   - Enter on a chat line runs the assistant request inline: the pending
//     frame is painted first, then the loop blocks on Assistant.Send and
//     resumes with the reply (or the error, shown as a reply).
//
// State ownership:
//   - Cursor and viewport state lives in internal/ui/state.Menu; the chat
//     buffer and the bounded transcript live in internal/ui/state.Chat.
//   - Terminal size is owned by the caller through the Geometry interface;
//     the session re-reads it whenever the decoder synthesizes a resize
//     event and forces a full repaint.
//
// Rendering:
//   - buildFrame assembles the whole screen top to bottom and writeFrame
//     repaints it with a clear sequence. There is no partial repaint path,
//     which keeps the renderer honest across resizes and mode switches.
//   - The transcript overlay (overlay.go) renders the retained history as
//     markdown via glamour and blocks until a key dismisses it.
//
// This separation keeps Session.apply compact and makes it easy to test
// navigation, chat editing, and rendering without a real terminal.
package ui
