package mail

import "strings"

// Flags understood by the local mail command. The -a form attaches an
// additional header line; To recipients are passed as positional arguments
// at the end of the argument list.
const (
	noPromptFlag = "-n"
	headerFlag   = "-a"
	subjectFlag  = "-s"
)

// BuildHeaderArguments assembles the argument list for the local mail
// command. The order is fixed: the no-prompt marker, the From header, the
// subject, one header per Cc address, one header per Bcc address, and
// finally the To addresses as positional arguments. Groups with no
// addresses contribute nothing; a list with no To addresses yields an
// invocation with no positional recipient.
func BuildHeaderArguments(from, subject string, options []RecipientOption) []string {
	to, cc, bcc := Partition(options)

	args := []string{
		noPromptFlag,
		headerFlag, "From: " + from,
		subjectFlag, subject,
	}
	for _, addr := range cc {
		args = append(args, headerFlag, "Cc: "+addr)
	}
	for _, addr := range bcc {
		args = append(args, headerFlag, "Bcc: "+addr)
	}
	return append(args, to...)
}

// RenderPreview renders the message a send would produce, without touching
// the process boundary. The Cc and Bcc lines are omitted entirely when no
// address of that kind is present. The body is shown verbatim, carriage
// returns included; sanitization happens only on the send path.
func RenderPreview(from, subject string, options []RecipientOption, body string) string {
	to, cc, bcc := Partition(options)

	var b strings.Builder
	b.WriteString("From: " + from + "\n")
	b.WriteString("To  : " + strings.Join(to, ", ") + "\n")
	if len(cc) > 0 {
		b.WriteString("Cc  : " + strings.Join(cc, ", ") + "\n")
	}
	if len(bcc) > 0 {
		b.WriteString("Bcc : " + strings.Join(bcc, ", ") + "\n")
	}
	b.WriteString("Subject: " + subject + "\n")
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n\n")
	return b.String()
}

// RenderPreviewSimple renders a preview for a message with a single To
// recipient.
func RenderPreviewSimple(from, to, subject, body string) string {
	return RenderPreview(from, subject, []RecipientOption{To(to)}, body)
}

// sanitizeBody strips every carriage return from the body before it is fed
// to the mail command; some receiving agents mishandle embedded CRs.
func sanitizeBody(body string) string {
	return strings.ReplaceAll(body, "\r", "")
}
