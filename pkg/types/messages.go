package types

// Client -> Server
// SubmitBid:
//   player_id: string
//   amount: 7..13
//   pass: boolean // true records a pass; amount ignored
//
// SelectTrump:
//   player_id: string
//   suit: "spades" | "hearts" | "diamonds" | "clubs"
//
// PlayCard:
//   player_id: string
//   card: { suit: string, rank: 2..14 } // 11=J 12=Q 13=K 14=A

// Server -> Client
// StateSnapshot:
//   version: number
//   state: full MatchState (see pkg/types/snapshot.go)
//
// Error:
//   error: string // rule violation or malformed message; state unchanged
