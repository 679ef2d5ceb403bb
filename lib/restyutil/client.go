package restyutil

import (
	"net/http/cookiejar"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// baseline client for scraping public sites: browser user-agent,
// cookie jar, cloudflare bypass transport. some of the institutional
// hosts sit behind cloudflare's browser check.
func NewScrapingClient(timeout time.Duration, userAgent string) *resty.Client {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	if timeout <= 0 {
		timeout = time.Second * 30
	}

	client := resty.New()
	jar, _ := cookiejar.New(nil)
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", userAgent)
	client.SetTimeout(timeout)
	return client
}
