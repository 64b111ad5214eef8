package newsletter

import "context"

// Repository stores newsletter subscribers. Subscribe returns
// domain.ErrAlreadyExists when the email is already on the list.
type Repository interface {
	Subscribe(ctx context.Context, email, source string) error
}
