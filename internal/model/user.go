package model

import "time"

// User represents an application user record as stored in the
// `users` table. The json tags are omitted because these structs
// are used internally by the repository layer; handlers define
// separate response types with appropriate JSON tags.
//
// Fields:
//  ID                – primary key identifier of the user.
//  Email             – unique email address (stored lowercase).
//  Username          – unique public handle.
//  PasswordHash      – bcrypt hashed password (legacy rows may hold a hex sha256 digest).
//  IsAdmin           – whether the account can reach the admin endpoints.
//  EmailVerified     – set once the verification token has been redeemed.
//  VerificationToken – outstanding email verification token (nullable).
//  ResetToken        – outstanding password reset token (nullable).
//  ResetTokenExpires – when the reset token stops being redeemable (nullable).
//  CreatedAt         – timestamp of creation (DB default).
type User struct {
	ID                uint64     // users.id
	Email             string     // users.email
	Username          string     // users.username
	PasswordHash      string     // users.password_hash
	IsAdmin           bool       // users.is_admin
	EmailVerified     bool       // users.email_verified
	VerificationToken *string    // users.verification_token (nullable)
	ResetToken        *string    // users.reset_token (nullable)
	ResetTokenExpires *time.Time // users.reset_token_expires (nullable)
	CreatedAt         time.Time  // users.created_at
}
