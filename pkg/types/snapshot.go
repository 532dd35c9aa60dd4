package types

// SheetSnapshot:
//   rounds: Round[10] // each: yellow|purple|blue|redSum|green|clear|pink|redCount|locked
//   activeRound: number // 0..9, the single round open for edits
//   defaultRedCount: number // 0..99, snapshotted into a round on completion
//   playerName: string
//   glitterBlue: boolean // doubles the blue weight for every round
//   rowTotals: number[10] // derived, recomputed server-side
//   allLocked: boolean // derived; gate the game total display on this
//   gameTotal: number // derived, always computed regardless of lock state
//
// The persisted blob is the first five fields only; derived fields are
// recomputed on restore and absent/malformed fields fall back to the
// fresh-session defaults.
