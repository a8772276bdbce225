package logger

import (
	"regexp"
	"strings"
)

// Sensitive field patterns to filter from logs
var (
	credentialPattern = regexp.MustCompile(`(?i)(credential|x-amz-credential)[\s:=]+[^\s&]+`)
	signaturePattern  = regexp.MustCompile(`(?i)(signature|x-amz-signature)[\s:=]+[^\s&]+`)
	tokenPattern      = regexp.MustCompile(`(?i)(token|x-amz-security-token|bearer)[\s:=]+[^\s&]+`)
	accessKeyPattern  = regexp.MustCompile(`(?i)(access[_-]?key(?:[_-]?id)?)[\s:=]+[^\s&]+`)
	secretPattern     = regexp.MustCompile(`(?i)(secret(?:[_-]?access[_-]?key)?)[\s:=]+[^\s&]+`)
)

const redactedPlaceholder = "[REDACTED]"

// SanitizeLogMessage removes credentials and request signatures from log messages
func SanitizeLogMessage(message string) string {
	message = credentialPattern.ReplaceAllString(message, "${1}="+redactedPlaceholder)
	message = signaturePattern.ReplaceAllString(message, "${1}="+redactedPlaceholder)
	message = tokenPattern.ReplaceAllString(message, "${1}="+redactedPlaceholder)
	message = accessKeyPattern.ReplaceAllString(message, "${1}="+redactedPlaceholder)
	message = secretPattern.ReplaceAllString(message, "${1}="+redactedPlaceholder)

	return message
}

// SanitizeMap removes sensitive keys from a map
func SanitizeMap(data map[string]interface{}) map[string]interface{} {
	sensitiveKeys := []string{
		"secret", "access_key", "accesskey", "access-key",
		"token", "credential", "signature", "authorization",
	}

	sanitized := make(map[string]interface{}, len(data))
	for k, v := range data {
		lowerKey := strings.ToLower(k)
		isSensitive := false

		for _, sensitiveKey := range sensitiveKeys {
			if strings.Contains(lowerKey, sensitiveKey) {
				isSensitive = true
				break
			}
		}

		if isSensitive {
			sanitized[k] = redactedPlaceholder
		} else {
			sanitized[k] = v
		}
	}

	return sanitized
}
