package domain

// VerificationCode is a one-time 6-digit code proving control of the registered
// email. PK: user_id, SK: purpose ("login"). Writing a new code for the same
// (user, purpose) overwrites the previous one in a single PutItem, so at most one
// code is ever active per purpose.
// ExpiresAt is a Unix timestamp doubling as the DynamoDB TTL attribute.
type VerificationCode struct {
	UserID    string `json:"user_id" dynamodbav:"user_id"`
	Purpose   string `json:"purpose" dynamodbav:"purpose"`
	Code      string `json:"-" dynamodbav:"code"`
	Attempts  int    `json:"attempts" dynamodbav:"attempts"`
	Consumed  bool   `json:"consumed" dynamodbav:"consumed"`
	IssuedAt  int64  `json:"issued_at" dynamodbav:"issued_at"`
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}

// PurposeLogin tags codes issued for the second login step.
const PurposeLogin = "login"
