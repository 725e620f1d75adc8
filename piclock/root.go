package piclock

import (
	"errors"
	"fmt"
	"os/user"
)

// ErrNotRoot is returned by RequireRoot for unprivileged users.
var ErrNotRoot = errors.New("ROOT access is required for this operation")

// RequireRoot fails unless we are running as root.
func RequireRoot() error {
	currentUser, err := user.Current()
	if err != nil {
		return fmt.Errorf("RequireRoot: %s", err.Error())
	}

	if currentUser.Uid != "0" {
		return ErrNotRoot
	}

	return nil
}
