package response

const (
	MessageSuccess      = "Success"
	DefaultErrorMessage = "Something went wrong"

	BadRequestCode          = 1
	UnauthorizedCode        = 401
	TooManyRequestsCode     = 429
	InternalServerErrorCode = 500

	DateTimeFormat = "2006-01-02 15:04:05"
)
