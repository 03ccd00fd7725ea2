package vault

import "bytes"

type cacheKey struct {
	root  Root
	label string
	key   string
}

func newCacheKey(r Root, a Address) cacheKey {
	return cacheKey{root: r, label: a.Label, key: a.Key}
}

// cached returns a copy of the cached record payload.
func (v *Vault) cached(k cacheKey) ([]byte, bool) {
	if v.cache == nil {
		return nil, false
	}

	data, ok := v.cache.Get(k)
	if !ok {
		return nil, false
	}

	return bytes.Clone(data), true
}

func (v *Vault) cacheRecord(k cacheKey, data []byte) {
	if v.cache != nil {
		v.cache.Add(k, bytes.Clone(data))
	}
}

func (v *Vault) uncache(k cacheKey) {
	if v.cache != nil {
		v.cache.Remove(k)
	}
}
