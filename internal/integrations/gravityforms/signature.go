// Package gravityforms forwards captured leads to a Gravity Forms style
// web API using time-limited HMAC-signed requests.
package gravityforms

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// signatureTTL is how long a signed request stays valid upstream.
const signatureTTL = time.Hour

// sign computes the request signature over "{publicKey}:{method}:{route}:{expires}"
// keyed with the private key. The digest is base64 then URL-encoded because it
// travels as a query parameter.
func sign(publicKey, privateKey, method, route string, expires int64) string {
	message := fmt.Sprintf("%s:%s:%s:%d", publicKey, method, route, expires)
	mac := hmac.New(sha1.New, []byte(privateKey))
	mac.Write([]byte(message))
	digest := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return url.QueryEscape(digest)
}

// signedURL builds the fully authenticated endpoint URL for one request.
func signedURL(baseURL, route, method, publicKey, privateKey string, now time.Time) string {
	expires := now.Add(signatureTTL).Unix()
	signature := sign(publicKey, privateKey, method, route, expires)
	return fmt.Sprintf("%s/%s?api_key=%s&signature=%s&expires=%d",
		strings.TrimRight(baseURL, "/"), route, url.QueryEscape(publicKey), signature, expires)
}
