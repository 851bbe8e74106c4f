package service

import "strings"

// TargetClassifier flags SSIDs containing one of the configured keywords.
// Matching is case-sensitive and keywords are tried in configured order.
type TargetClassifier struct {
	keywords []string
}

func NewTargetClassifier(keywords []string) *TargetClassifier {
	return &TargetClassifier{keywords: append([]string(nil), keywords...)}
}

func (c *TargetClassifier) Classify(ssid string) (string, bool) {
	return Classify(ssid, c.keywords)
}

// Classify returns the first keyword that is a substring of ssid.
// An empty ssid never matches.
func Classify(ssid string, keywords []string) (string, bool) {
	if ssid == "" {
		return "", false
	}
	for _, k := range keywords {
		if strings.Contains(ssid, k) {
			return k, true
		}
	}
	return "", false
}
