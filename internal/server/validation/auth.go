package validation

// RegisterInput is the body of POST /api/auth/register.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required"`
	FullName string `json:"fullname" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginInput is the body of POST /api/auth/login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func DecodeRegister(body []byte) (*RegisterInput, error) {
	in := &RegisterInput{}
	if err := decode(body, in, true); err != nil {
		return nil, err
	}
	if err := check(in); err != nil {
		return nil, err
	}
	return in, nil
}

func DecodeLogin(body []byte) (*LoginInput, error) {
	in := &LoginInput{}
	if err := decode(body, in, true); err != nil {
		return nil, err
	}
	if err := check(in); err != nil {
		return nil, err
	}
	return in, nil
}
