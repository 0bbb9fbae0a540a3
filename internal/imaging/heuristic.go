// Package imaging serves stored photos and decides, per request, whether the
// caller gets the original or a watermarked derivative.
package imaging

import (
	"net/http"
	"net/url"
	"strings"
)

// IsDownloadRequest sniffs a request to classify it as a download (gets the
// watermark) or an in-page display (gets the original). A request is a
// download when any of these hold:
//
//   - Sec-Fetch-Dest is "empty" (direct save / fetch)
//   - no same-origin referer and no image accept type (direct access)
//   - Accept mentions application/octet-stream
//   - the user agent is a download tool (curl, wget)
//   - no Range header and no image accept type (browsers displaying media
//     usually send one or the other)
func IsDownloadRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	secFetchDest := r.Header.Get("Sec-Fetch-Dest")
	rangeHeader := r.Header.Get("Range")
	userAgent := r.Header.Get("User-Agent")

	sameOrigin := refererMatchesHost(r.Header.Get("Referer"), r.Host)
	wantsImage := strings.Contains(accept, "image/")

	switch {
	case secFetchDest == "empty":
		return true
	case !sameOrigin && !wantsImage:
		return true
	case strings.Contains(accept, "application/octet-stream"):
		return true
	case strings.Contains(userAgent, "curl") || strings.Contains(userAgent, "wget"):
		return true
	case rangeHeader == "" && !wantsImage:
		return true
	}
	return false
}

func refererMatchesHost(referer, host string) bool {
	if referer == "" {
		return false
	}
	u, err := url.Parse(referer)
	if err != nil {
		return false
	}
	if u.Host == host {
		return true
	}
	return strings.Contains(u.Host, "localhost") || strings.Contains(u.Host, "127.0.0.1")
}
