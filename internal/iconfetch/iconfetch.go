// Package iconfetch downloads a website's icon and saves it as a PNG.
// It scrapes the page for icon links in order of preference
// (apple-touch-icon, sized favicons, plain favicons, og:image) and falls
// back to /favicon.ico when the page declares nothing.
package iconfetch

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/image/draw"

	"github.com/Mavwarf/iconforge/internal/httputil"
	"github.com/Mavwarf/iconforge/internal/paths"
)

// TargetSize is the edge length every saved icon is scaled to.
const TargetSize = 256

// Fetch downloads the best available icon for the website at pageURL and
// writes it as a TargetSize×TargetSize PNG named after name (sanitized)
// in dir. It returns the path of the written file.
func Fetch(pageURL, dir, name string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("iconfetch: invalid URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return "", fmt.Errorf("iconfetch: unsupported URL scheme %q", base.Scheme)
	}

	if err := os.MkdirAll(dir, paths.DirPerm); err != nil {
		return "", err
	}

	iconURL := discoverIconURL(base)

	data, err := download(iconURL)
	if err != nil {
		return "", err
	}

	out := filepath.Join(dir, SanitizeName(name)+".png")
	if err := savePNG(data, out); err != nil {
		return "", err
	}
	return out, nil
}

// discoverIconURL fetches the page HTML and picks an icon URL. Any failure
// to fetch or parse the page degrades to the /favicon.ico fallback; the
// page being down for HTML does not mean its favicon is.
func discoverIconURL(base *url.URL) string {
	resp, err := httputil.Get(base.String())
	if err != nil {
		return defaultFaviconURL(base)
	}
	defer resp.Body.Close()
	if err := httputil.CheckStatus(resp, "iconfetch: page"); err != nil {
		return defaultFaviconURL(base)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return defaultFaviconURL(base)
	}
	return pickIconURL(doc, base)
}

// pickIconURL returns the best icon URL declared in doc, or the
// /favicon.ico fallback.
func pickIconURL(doc *goquery.Document, base *url.URL) string {
	if u := largestByLink(doc, base, "link[rel~='apple-touch-icon']"); u != "" {
		return u
	}
	if u := largestByLink(doc, base, "link[rel~='icon'][sizes]"); u != "" {
		return u
	}
	if u := firstHref(doc, base, "link[rel~='icon']"); u != "" {
		return u
	}
	if u, ok := doc.Find("meta[property='og:image']").Attr("content"); ok {
		if abs := resolve(base, u); abs != "" {
			return abs
		}
	}
	return defaultFaviconURL(base)
}

// largestByLink returns the link matching selector with the largest
// declared sizes attribute. sizes="any" (vector) wins outright; links
// without sizes sort last.
func largestByLink(doc *goquery.Document, base *url.URL, selector string) string {
	type candidate struct {
		size int
		url  string
	}
	var found []candidate

	doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok {
			return true
		}
		abs := resolve(base, href)
		if abs == "" {
			return true
		}
		sizes := s.AttrOr("sizes", "")
		if sizes == "any" {
			found = []candidate{{size: 1 << 30, url: abs}}
			return false
		}
		size := 0
		if dim, _, ok := strings.Cut(sizes, "x"); ok {
			size, _ = strconv.Atoi(dim)
		}
		found = append(found, candidate{size: size, url: abs})
		return true
	})

	if len(found) == 0 {
		return ""
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].size > found[j].size })
	return found[0].url
}

// firstHref returns the first resolvable href matching selector.
func firstHref(doc *goquery.Document, base *url.URL, selector string) string {
	var out string
	doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok {
			return true
		}
		if abs := resolve(base, href); abs != "" {
			out = abs
			return false
		}
		return true
	})
	return out
}

// resolve joins href against base, returning "" on failure.
func resolve(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// defaultFaviconURL returns the conventional /favicon.ico location.
func defaultFaviconURL(base *url.URL) string {
	return fmt.Sprintf("%s://%s/favicon.ico", base.Scheme, base.Host)
}

// download GETs url and returns the body bytes.
func download(url string) ([]byte, error) {
	resp, err := httputil.Get(url)
	if err != nil {
		return nil, fmt.Errorf("iconfetch: download: %w", err)
	}
	defer resp.Body.Close()
	if err := httputil.CheckStatus(resp, "iconfetch: icon"); err != nil {
		return nil, err
	}
	return io.ReadAll(resp.Body)
}

// savePNG decodes data (PNG, JPEG, or GIF), scales it to TargetSize, and
// writes it as a PNG at out.
func savePNG(data []byte, out string) error {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("iconfetch: unsupported image data: %w", err)
	}

	img := src
	if b := src.Bounds(); b.Dx() != TargetSize || b.Dy() != TargetSize {
		dst := image.NewRGBA(image.Rect(0, 0, TargetSize, TargetSize))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
		img = dst
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SanitizeName replaces filesystem-hostile characters in name with '_'.
func SanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}
