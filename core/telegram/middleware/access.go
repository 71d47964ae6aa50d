package middleware

import tele "gopkg.in/telebot.v4"

// AdminOptions defines how admin-only checks should behave.
// A zero AdminID disables admin-only handlers altogether.
type AdminOptions struct {
	AdminID  int64
	OnReject tele.HandlerFunc
}

func (o AdminOptions) allowed(c tele.Context) bool {
	user := c.Sender()
	return o.AdminID != 0 && user != nil && user.ID == o.AdminID
}

func (o AdminOptions) reject(c tele.Context) error {
	if o.OnReject != nil {
		return o.OnReject(c)
	}
	return nil
}

// WithAdminCheck wraps handler so that it only runs for the configured admin when adminOnly is set.
func WithAdminCheck(opts AdminOptions, adminOnly bool, handler tele.HandlerFunc) tele.HandlerFunc {
	if !adminOnly {
		return handler
	}
	return func(c tele.Context) error {
		if !opts.allowed(c) {
			return opts.reject(c)
		}
		return handler(c)
	}
}

// AdminOnlyMiddleware ensures that only the admin user can invoke downstream handlers.
func AdminOnlyMiddleware(opts AdminOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return WithAdminCheck(opts, true, next)
	}
}
