// Package mailbox generates random disposable mailbox addresses.
package mailbox

import (
	"strings"

	"github.com/google/uuid"
)

// localPartLen keeps generated addresses short enough to retype.
const localPartLen = 12

// Random returns a fresh random address on domain. The local part is a
// UUID with the hyphens removed, truncated; collisions are as unlikely
// as a UUID prefix collision, which is fine for throwaway mailboxes.
func Random(domain string) string {
	local := strings.ReplaceAll(uuid.NewString(), "-", "")[:localPartLen]
	return local + "@" + strings.ToLower(domain)
}

// Normalize lowers an address for use as a mailbox key.
func Normalize(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}
