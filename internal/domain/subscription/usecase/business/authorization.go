package business

// canMutate is the single authorization rule for mutating a
// subscription: the channel author may act on any subscription of the
// channel, every other identity only on its own. Update and delete must
// both go through this predicate.
func canMutate(authorID, actingID, targetID string) bool {
	return actingID == authorID || actingID == targetID
}
