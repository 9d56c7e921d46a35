package mail

// RecipientKind distinguishes the header a recipient address belongs to.
type RecipientKind int

const (
	// KindTo marks a primary recipient.
	KindTo RecipientKind = iota
	// KindCc marks a carbon-copy recipient.
	KindCc
	// KindBcc marks a blind-carbon-copy recipient.
	KindBcc
)

// RecipientOption tags a single address as a To, Cc, or Bcc recipient.
// It is an immutable value type; two options are equal when they carry the
// same kind and the same address. The address is treated as opaque text and
// is never validated.
type RecipientOption struct {
	kind RecipientKind
	addr string
}

// To creates an option marking addr as a primary recipient.
func To(addr string) RecipientOption {
	return RecipientOption{kind: KindTo, addr: addr}
}

// Cc creates an option marking addr as a carbon-copy recipient.
func Cc(addr string) RecipientOption {
	return RecipientOption{kind: KindCc, addr: addr}
}

// Bcc creates an option marking addr as a blind-carbon-copy recipient.
func Bcc(addr string) RecipientOption {
	return RecipientOption{kind: KindBcc, addr: addr}
}

// Kind returns the recipient kind of this option.
func (o RecipientOption) Kind() RecipientKind {
	return o.kind
}

// Address returns the address this option carries.
func (o RecipientOption) Address() string {
	return o.addr
}

// Partition splits an option list into To, Cc, and Bcc address lists,
// preserving the order in which each kind appeared in the original list.
// It never fails; unknown kinds cannot be constructed.
func Partition(options []RecipientOption) (to, cc, bcc []string) {
	for _, opt := range options {
		switch opt.kind {
		case KindTo:
			to = append(to, opt.addr)
		case KindCc:
			cc = append(cc, opt.addr)
		case KindBcc:
			bcc = append(bcc, opt.addr)
		}
	}
	return to, cc, bcc
}
