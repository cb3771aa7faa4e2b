package form

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	v "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/zero2prod/newsletter/internal/entity"
	gerr "github.com/zero2prod/newsletter/internal/errors"
)

// MaxFormBytes caps the url-encoded body of a subscription request.
const MaxFormBytes = 16 << 10

// SubscribeRequest is the url-encoded subscription form. Fields are
// pointers so an absent key can be told apart from an empty value.
type SubscribeRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (r *SubscribeRequest) Validate() error {
	return ValidateStruct(r,
		v.Field(&r.Name, v.NotNil),
		v.Field(&r.Email, v.NotNil),
	)
}

// Insert converts a validated request into a row to store.
func (r *SubscribeRequest) Insert() *entity.SubscriptionInsert {
	return &entity.SubscriptionInsert{
		Name:  *r.Name,
		Email: *r.Email,
	}
}

// postFormValue returns the first body value of key, nil when absent.
// Invalid UTF-8 sequences are replaced with U+FFFD.
func postFormValue(r *http.Request, key string) *string {
	vs, ok := r.PostForm[key]
	if !ok || len(vs) == 0 {
		return nil
	}
	val := strings.ToValidUTF8(vs[0], "\uFFFD")
	return &val
}

// BindSubscribe decodes and validates the request body. Only the body is
// read, query parameters are ignored. Errors wrap gerr.ErrBadForm unless
// the body exceeds MaxFormBytes, in which case *http.MaxBytesError is
// returned in the chain.
func BindSubscribe(w http.ResponseWriter, r *http.Request) (*SubscribeRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxFormBytes)
	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", gerr.ErrBadForm, err.Error())
	}

	req := &SubscribeRequest{
		Name:  postFormValue(r, "name"),
		Email: postFormValue(r, "email"),
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}
