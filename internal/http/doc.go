// Package http provides the HTTP client behind the fetch command.
//
// This package handles:
//   - HEAD requests to learn the size, type, ETag and modification time of a
//     source before drawing a bar
//   - Streaming GET requests
//   - Retry with exponential backoff and jitter on 5xx and transport errors
//
// # Usage
//
//	client := http.NewClient(http.DefaultOptions())
//
//	info, err := client.Head(ctx, url)
//	// info.Size, info.ETag, info.ContentType, info.LastModified
//
//	body, err := client.Get(ctx, url)
//	defer body.Close()
package http
