package domain

import "context"

// ServicePort is the interface implemented by the mailer service
type ServicePort interface {
	Send(ctx context.Context, req MailRequest) (MailReceipt, error)
}
