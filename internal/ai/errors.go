package ai

import "strings"

// Kind classifies a provider failure. Callers switch on Kind, never on the
// underlying message text; only Classify inspects message text, because that
// is the provider's only signal.
type Kind string

const (
	// KindQuota means the provider reported usage allowance exhaustion.
	// Never retried; halts the whole run.
	KindQuota Kind = "quota"
	// KindTransient covers network hiccups, malformed responses and other
	// failures worth one automatic retry.
	KindTransient Kind = "transient"
	// KindOther is a transient failure that survived the retry budget.
	KindOther Kind = "other"
	// KindParseFailure marks an unreadable or empty input workbook.
	KindParseFailure Kind = "parse_failure"
	// KindMissingCredential marks a missing provider API key (pre-flight).
	KindMissingCredential Kind = "missing_credential"
)

// QuotaRowMessage is the fixed user-facing message attached to every row of a
// batch that failed on quota, regardless of the provider's own wording.
const QuotaRowMessage = "Quota exceeded. You should use the free ChatGPT API instead."

// Error is a classified provider failure.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// DisplayMessage is what the user sees on affected rows: the fixed quota
// message for quota errors, the underlying message verbatim otherwise.
func (e *Error) DisplayMessage() string {
	if e.Kind == KindQuota {
		return QuotaRowMessage
	}
	return e.Message
}

var quotaMarkers = []string{"429", "quota", "exhausted", "resource_exhausted"}

// Classify maps a raw provider error to a quota or transient Error. The check
// is a case-insensitive substring match over the full error text, which
// includes the provider's response body when the HTTP client surfaces one.
func Classify(err error) *Error {
	msg := err.Error()
	lower := strings.ToLower(msg)
	for _, marker := range quotaMarkers {
		if strings.Contains(lower, marker) {
			return &Error{Kind: KindQuota, Message: msg, Err: err}
		}
	}
	return &Error{Kind: KindTransient, Message: msg, Err: err}
}
