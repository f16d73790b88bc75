package cache

import (
	"errors"
	"fmt"
	"strings"
)

type Key struct {
	// CustomerID scopes the entry to one profiled customer. Optional
	// for prefix only keys.
	CustomerID string
	// Prefix - Helps better grouping and searching
	// i.e store_name + entity
	Prefix string
	// Suffix - optional
	Suffix string
}

var (
	ErrorInvalidCustomer = errors.New("invalid key customer")
	ErrorInvalidPrefix   = errors.New("invalid key prefix")
	ErrorInvalidKey      = errors.New("invalid redis cache key")
	ErrorInvalidValues   = errors.New("invalid values to set")
)

func NewKey(customerID, prefix, suffix string) (*Key, error) {
	if customerID == "" {
		return nil, ErrorInvalidCustomer
	}

	if prefix == "" {
		return nil, ErrorInvalidPrefix
	}

	return &Key{CustomerID: customerID, Prefix: prefix, Suffix: suffix}, nil
}

func NewKeyWithOnlyPrefix(prefix string) (*Key, error) {
	if prefix == "" {
		return nil, ErrorInvalidPrefix
	}

	return &Key{Prefix: prefix}, nil
}

func (key *Key) Key() (string, error) {
	if key.CustomerID == "" {
		return "", ErrorInvalidCustomer
	}

	if key.Prefix == "" {
		return "", ErrorInvalidPrefix
	}

	// key: i.e, profiles:cid:12345
	if key.Suffix == "" {
		return fmt.Sprintf("%s:cid:%s", key.Prefix, key.CustomerID), nil
	}
	return fmt.Sprintf("%s:cid:%s:%s", key.Prefix, key.CustomerID, key.Suffix), nil
}

// KeyWithAllCustomers - Match pattern covering every customer under the
// prefix, for scan based purges.
func (key *Key) KeyWithAllCustomers() (string, error) {
	if key.Prefix == "" {
		return "", ErrorInvalidPrefix
	}

	// key: i.e, profiles:cid:*
	return fmt.Sprintf("%s:cid:*", key.Prefix), nil
}

func (key *Key) KeyWithOnlyPrefix() (string, error) {
	if key.Prefix == "" {
		return "", ErrorInvalidPrefix
	}

	return key.Prefix, nil
}

// KeyFromString - Splits a cache key back into prefix/customer/suffix.
// Only for cid based keys.
func KeyFromString(key string) (*Key, error) {
	if key == "" {
		return nil, ErrorInvalidValues
	}

	cacheKey := Key{}
	keyCidSplit := strings.Split(key, ":cid:")
	if len(keyCidSplit) == 2 {
		customerIDSuffix := strings.SplitN(keyCidSplit[1], ":", 2)
		if len(customerIDSuffix) == 2 {
			cacheKey.Suffix = customerIDSuffix[1]
		}
		cacheKey.CustomerID = customerIDSuffix[0]
		cacheKey.Prefix = keyCidSplit[0]
	}
	return &cacheKey, nil
}
