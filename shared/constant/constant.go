package constant

import "time"

const (
	ContextGuest  = "guest"
	ContextSystem = "system"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

const (
	RequestParamPage     = "page"
	RequestParamLimit    = "limit"
	RequestParamSortBy   = "sort_by"
	RequestParamSortDir  = "sort_dir"
	RequestParamStatus   = "status"
	RequestParamCategory = "category"
	RequestParamReplied  = "replied"
)

const (
	RequestParamID   = "id"
	RequestParamCode = "code"
	RequestParamForm = "form"
	RequestMaxMemory = 10 << 20 // 10 MB
)

const (
	DefaultValuePage    = 1
	DefaultValueLimit   = 10
	DefaultValueSortBy  = "created_at"
	DefaultValueSortDir = "DESC"
)

const (
	FieldCreatedAt  = "created_at"
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

// PqErrorCodeUniqueViolation is the SQLSTATE postgres reports for a unique index violation.
const PqErrorCodeUniqueViolation = "23505"

const (
	DateFormat   = time.RFC3339
	CalendarDate = "2006-01-02"
)

const MinutesToSeconds = 60

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelEventScopeName      = "event"

	OtelQueryAttributeKey = "query"
	OtelS3ScopeName       = "s3"
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-IP"
	RequestHeaderAPIKey             = "X-API-Key"
	RequestHeaderFormInstance       = "X-Form-Instance"
)

const (
	ContentTypeJSON = "application/json"
	FormFile        = "file"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

// User facing messages.
const (
	MessageGenericErrorTitle  = "Có lỗi xảy ra"
	MessageStoreFailure       = "Có lỗi xảy ra. Vui lòng thử lại sau hoặc liên hệ hotline để được hỗ trợ."
	MessageInvalidInputTitle  = "Thông tin không hợp lệ"
	MessageSubmissionInFlight = "Yêu cầu đang được xử lý, vui lòng đợi"
	MessageForbidden          = "Bạn không có quyền thực hiện thao tác này"
	MessageAdminAccessDenied  = "Bạn không có quyền truy cập trang quản trị."
	MessageRecordAccessDenied = "Bạn không có quyền thao tác trên bản ghi này"
	MessageSignInRequired     = "Vui lòng đăng nhập để tiếp tục"
	MessageUnknownStatusLabel = "Không xác định"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const Empty = ""
