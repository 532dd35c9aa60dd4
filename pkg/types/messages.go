package types

// Client -> Server
// SetField:
//   round: number (0-based)
//   field: "yellow" | "purple" | "blue" | "redSum" | "green" | "clear" | "pink"
//   value: string (raw text, coerced server-side to [-999, 999])
//
// CompleteRound: {}
//   Locks the active round with the current default red-dice count and
//   advances the active index.
//
// SetDefaultRedCount:
//   value: string (raw text, coerced then clamped to [0, 99])
//
// SetGlitterBlue:
//   on: boolean
//
// SetPlayerName:
//   name: string
//
// ResetGame: {}
//   Wipes the sheet back to a fresh session. Confirmation is the UI's job.

// Server -> Client
// StateSnapshot:
//   version: number
//   snapshot: see snapshot.go
//
// Error:
//   error: string
