package verifier

import "strings"

// NormalizeChannelHandle turns a stored channel link into something the bot
// API can resolve: the last path segment of a t.me link as an @handle.
// Invite-only joinchat links have no public handle and pass through
// verbatim.
func NormalizeChannelHandle(link string) string {
	if strings.Contains(link, "/joinchat/") {
		return link
	}

	parts := strings.Split(strings.TrimRight(link, "/"), "/")
	handle := parts[len(parts)-1]

	if !strings.HasPrefix(handle, "@") {
		handle = "@" + handle
	}
	return handle
}
