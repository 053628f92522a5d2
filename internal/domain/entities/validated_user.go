package entities

type ValidatedUser struct {
	*User
}

// NewValidatedUser is the only way to obtain a ValidatedUser, so write
// paths can require one and be sure the entity passed validation.
func NewValidatedUser(user *User) (*ValidatedUser, error) {
	if err := user.validate(); err != nil {
		return nil, err
	}

	return &ValidatedUser{User: user}, nil
}

func (vu *ValidatedUser) GetUser() *User {
	return vu.User
}
