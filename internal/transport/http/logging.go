package http

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

const (
	requestBodyLogKey  = "http.request.body.summary"
	responseBodyLogKey = "http.response.body.summary"
	callerLogKey       = "http.caller"

	maxLoggedBody    = 2048
	maxLoggedString  = 256
	maxSummaryDepth  = 4
	maxSummaryFields = 12
	maxArraySamples  = 3
	truncatedSuffix  = "...(truncated)"
)

// setCaller records the caller identity named in a request so the access log
// can attribute it.
func setCaller(c echo.Context, userID string) {
	if id := strings.TrimSpace(userID); id != "" {
		c.Set(callerLogKey, id)
	}
}

func registerLogging(e *echo.Echo, logger logrus.FieldLogger) {
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			caller, _ := c.Get(callerLogKey).(string)
			if caller == "" {
				caller = "anonymous"
			}

			fields := logrus.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency_ms": v.Latency.Milliseconds(),
				"caller":     caller,
			}
			if summary := c.Get(requestBodyLogKey); summary != nil {
				fields["request_body"] = summary
			}
			if summary := c.Get(responseBodyLogKey); summary != nil {
				fields["response_body"] = summary
			}

			entry := logger.WithFields(fields)
			switch {
			case v.Error != nil:
				entry.WithError(v.Error).Error("http request")
			case v.Status >= 500:
				entry.Error("http request")
			case v.Status >= 400:
				entry.Warn("http request")
			default:
				entry.Info("http request")
			}
			return nil
		},
	}))

	e.Use(middleware.BodyDumpWithConfig(middleware.BodyDumpConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || strings.HasPrefix(c.Path(), "/swagger")
		},
		Handler: func(c echo.Context, reqBody, resBody []byte) {
			if summary := sanitizeBody(reqBody, c.Request().Header.Get(echo.HeaderContentType)); summary != nil {
				c.Set(requestBodyLogKey, summary)
			}
			if summary := sanitizeBody(resBody, c.Response().Header().Get(echo.HeaderContentType)); summary != nil {
				c.Set(responseBodyLogKey, summary)
			}
		},
	}))
}

// sanitizeBody reduces a request or response body to something safe and
// small enough to log. Emails are masked, long strings and arrays are cut
// down, and binary payloads are replaced by a marker.
func sanitizeBody(body []byte, contentType string) interface{} {
	if len(body) == 0 {
		return nil
	}

	mediaType, params, _ := mime.ParseMediaType(strings.TrimSpace(contentType))
	if strings.HasPrefix(mediaType, "multipart/") {
		return summarizeMultipart(body, params["boundary"])
	}

	if mediaType == echo.MIMEApplicationJSON || json.Valid(body) {
		var value interface{}
		if err := json.Unmarshal(body, &value); err == nil {
			return summarizeJSON(value, "", 0)
		}
	}

	if containsBinaryBytes(body) {
		return "binary"
	}
	return truncate(string(body), maxLoggedBody)
}

func summarizeJSON(value interface{}, key string, depth int) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		if depth >= maxSummaryDepth {
			return "{...}"
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		out := make(map[string]interface{}, minInt(len(keys), maxSummaryFields)+1)
		for i, k := range keys {
			if i == maxSummaryFields {
				out["_omitted_fields"] = len(keys) - i
				break
			}
			out[k] = summarizeJSON(v[k], strings.ToLower(k), depth+1)
		}
		return out
	case []interface{}:
		if depth >= maxSummaryDepth {
			return "[...]"
		}
		n := minInt(len(v), maxArraySamples)
		items := make([]interface{}, 0, n)
		for _, item := range v[:n] {
			items = append(items, summarizeJSON(item, key, depth+1))
		}
		if len(v) <= maxArraySamples {
			return items
		}
		return map[string]interface{}{
			"_total_items": len(v),
			"_sample":      items,
		}
	case string:
		return sanitizeString(v, key)
	default:
		return v
	}
}

func summarizeMultipart(body []byte, boundary string) interface{} {
	if boundary == "" {
		return "binary"
	}

	fields := make(map[string]interface{})
	reader := multipart.NewReader(bytes.NewReader(body), boundary)
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "binary"
		}

		name := part.FormName()
		switch {
		case name == "":
		case part.FileName() != "":
			fields[name] = "binary"
		default:
			data, err := io.ReadAll(io.LimitReader(part, maxLoggedBody+1))
			if err != nil {
				fields[name] = "binary"
			} else {
				fields[name] = sanitizeString(string(data), strings.ToLower(name))
			}
		}
		_ = part.Close()
	}

	if len(fields) == 0 {
		return "binary"
	}
	return fields
}

func sanitizeString(value string, key string) string {
	if strings.Contains(key, "email") {
		return maskEmail(value)
	}
	if containsBinaryBytes([]byte(value)) {
		return "binary"
	}
	return truncate(value, maxLoggedString)
}

// maskEmail keeps the first character of the local part and the domain.
func maskEmail(value string) string {
	at := strings.LastIndex(value, "@")
	if at <= 0 {
		return "redacted"
	}
	first, _ := utf8.DecodeRuneInString(value)
	return string(first) + "***" + value[at:]
}

func containsBinaryBytes(data []byte) bool {
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			return true
		}
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return true
		}
		data = data[size:]
	}
	return false
}

func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	cut := value[:limit]
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut + truncatedSuffix
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
