package driven

import "errors"

// ErrConversationNotFound is returned by ChatStore writes that target a
// conversation that does not exist.
var ErrConversationNotFound = errors.New("conversation not found")
