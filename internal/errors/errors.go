package errors

var (
	ErrSomethingWentWrong = NewTypedError("A server error occured. Please contact the admin for further notice.", ErrorTypeInternalServerError, nil)

	RateLimitExceeded  = NewTypedError("Too many attempts. Please try again later.", ErrorTypeRateLimited, nil)
	InvalidRequestBody = NewTypedError("Request body is not valid JSON.", ErrorTypeBadRequest, nil)

	// Session
	MissingCredentials   = NewTypedError("Username and password fields are missing while logging in.", ErrorTypeBadRequest, nil)
	IncorrectCredentials = NewTypedError("Incorrect credentials!", ErrorTypeNotFound, nil)
	InactiveUser         = NewTypedError("Inactive user. Contact the admin to activate.", ErrorTypeUnauthenticated, nil)
	UndecidedRole        = NewTypedError("Your account is awaiting role approval. Contact the admin for further notice.", ErrorTypeUnauthenticated, nil)
	NoToken              = NewTypedError("No token detected", ErrorTypeUnauthenticated, nil)
	ExpiredToken         = NewTypedError("Session expired: Please log in again", ErrorTypeUnauthenticated, map[string]interface{}{
		"expired": true,
	})
	InvalidToken = NewTypedError("Invalid token: Access denied", ErrorTypeUnauthenticated, nil)

	// Signup
	MissingEmail        = NewTypedError("Email field is missing.", ErrorTypeBadRequest, nil)
	MissingCodeFields   = NewTypedError("Code and email fields are required.", ErrorTypeBadRequest, nil)
	MissingSignupFields = NewTypedError("Username, password, first name, last name, address, city, state and zip are required.", ErrorTypeBadRequest, nil)
	WeakPassword        = NewTypedError("Password must be at least 8 characters long and contain one uppercase, one lowercase, one number, and one special character.", ErrorTypeBadRequest, map[string]interface{}{
		"field": "password",
	})
	InvalidOrExpiredCode   = NewTypedError("Invalid or expired verification code.", ErrorTypeNotFound, nil)
	AccountNotFound        = NewTypedError("No pending signup was found for this email.", ErrorTypeNotFound, nil)
	EmailNotVerified       = NewTypedError("Email address has not been verified yet.", ErrorTypeBadRequest, map[string]interface{}{"field": "email"})
	SignupAlreadyCompleted = NewTypedError("Signup has already been completed for this email.", ErrorTypeConflict, map[string]interface{}{"field": "email"})
	EmailDeliveryFailed    = NewTypedError("Unable to send the verification email. Please try again later.", ErrorTypeDeliveryFailure, nil)

	// Store constraints
	InvalidEmail    = NewTypedError("Invalid email format.", ErrorTypeBadRequest, map[string]interface{}{"field": "email"})
	EmailExists     = NewTypedError("An account with this email already exists.", ErrorTypeConflict, map[string]interface{}{"field": "email"})
	InvalidUsername = NewTypedError("Username must be 3-64 characters of letters, numbers, dots or underscores.", ErrorTypeBadRequest, map[string]interface{}{"field": "username"})
	UsernameExists  = NewTypedError("Username is already taken.", ErrorTypeConflict, map[string]interface{}{"field": "username"})
	InvalidPhone    = NewTypedError("Phone number must contain exactly 10 digits.", ErrorTypeBadRequest, map[string]interface{}{"field": "phone"})
	PhoneExists     = NewTypedError("Phone number is already registered.", ErrorTypeConflict, map[string]interface{}{"field": "phone"})
	InvalidZip      = NewTypedError("Zip code must contain exactly 5 digits.", ErrorTypeBadRequest, map[string]interface{}{"field": "zip"})
	InvalidInitial  = NewTypedError("Middle initial must be a single letter.", ErrorTypeBadRequest, map[string]interface{}{"field": "initial"})
	InvalidState    = NewTypedError("State code must be two letters.", ErrorTypeBadRequest, map[string]interface{}{"field": "state_code"})
)
