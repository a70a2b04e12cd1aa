package entity

type ReactionType string

const (
	ReactionLike    ReactionType = "LIKE"
	ReactionRetweet ReactionType = "RETWEET"
)

// ValidReactionType reports whether t is one of the supported reaction types.
func ValidReactionType(t ReactionType) bool {
	return t == ReactionLike || t == ReactionRetweet
}
