package types

// StateSnapshot:
//   version: number
//   state:
//     players: [ { user_id, position: 0..3, team_id: 1|2 } ]
//     teams: { 1: { player_ids, cumulative_score }, 2: {...} }
//     total_rounds: 3 | 5
//     round_number: number
//     status: "waiting" | "starting" | "playing" | "finished" | "cancelled"
//     winner_team_id: 1 | 2 // absent on a drawn or unfinished match
//     round:
//       phase: "bidding" | "trump_selection" | "dealing_rest" | "trick_playing" | "round_ended"
//       dealer_position: 0..3
//       turn_player_id: string
//       hands: { [user_id]: Card[] } // server-side view; hosts filter per seat
//       bids: [ { player_id, amount, pass } ]
//       highest_bid: { player_id, amount }
//       trump_suit: string
//       trick_number: 1..13
//       current_trick: [ { player_id, card } ]
//       completed_tricks: [ { number, cards, lead_suit, winner_id } ]
//       team_tricks: { 1: n, 2: n }
//       round_scores: { 1: n, 2: n }
//       penalty_applied: boolean
