package models

// ForwardDigest is the compact form of a non-structured message sent to the forward topic.
type ForwardDigest struct {
	Subject string `json:"subject"`
	From    string `json:"from"`
	Body    string `json:"body"`
}
