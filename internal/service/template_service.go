// internal/service/template_service.go
package service

import (
	"fmt"
	"net/url"
	"strings"
)

// Personalize substitutes the {name} and {email} placeholders in a
// campaign template. Malformed templates pass through unchanged save for
// substitution, no validation is performed.
func Personalize(template, name, email string) string {
	result := template
	result = strings.ReplaceAll(result, "{name}", name)
	result = strings.ReplaceAll(result, "{email}", email)
	return result
}

// BuildUnsubscribeFooter renders the footer appended to every campaign
// email. The link carries the recipient's URL-encoded address.
func BuildUnsubscribeFooter(baseURL, email string) string {
	link := fmt.Sprintf("%s?email=%s", baseURL, url.QueryEscape(email))
	return fmt.Sprintf(
		`<br><br><p style="font-size:12px; color:#999;">You are receiving this because you signed up for updates from Sterling Cover Advisory.<br><a href="%s">Unsubscribe</a></p>`,
		link,
	)
}
