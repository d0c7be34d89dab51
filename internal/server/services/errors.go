package services

import (
	"fmt"

	"github.com/dmitrijs2005/forohub/internal/common"
)

// Integrity errors carry the message shown to the client.
var (
	ErrUnknownUser    = fmt.Errorf("%w: this user id isn't registered", common.ErrorIntegrity)
	ErrUnknownTopic   = fmt.Errorf("%w: this topic id isn't registered", common.ErrorIntegrity)
	ErrDuplicateTopic = fmt.Errorf("%w: a topic with this title and message already exists", common.ErrorIntegrity)
)

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", common.ErrorValidation, msg)
}
