package render

import "net/mail"

// Address is a {name?, address} pair, flattened from an address list (any
// RFC 5322 group syntax is flattened by net/mail before it reaches here).
type Address struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address"`
}

func parseAddressList(raw string) []Address {
	raw = Trim(raw)
	if raw == "" {
		return nil
	}
	list, err := mail.ParseAddressList(raw)
	if err != nil {
		if addr, aerr := mail.ParseAddress(raw); aerr == nil {
			list = []*mail.Address{addr}
		} else {
			return nil
		}
	}
	if len(list) == 0 {
		return nil
	}
	out := make([]Address, 0, len(list))
	for _, a := range list {
		out = append(out, Address{Name: a.Name, Address: a.Address})
	}
	return out
}

// parseFirstAddress returns the first mailbox of an address string (used
// for From, which is always a single mailbox rather than a list).
func parseFirstAddress(raw string) *Address {
	list := parseAddressList(raw)
	if len(list) == 0 {
		return nil
	}
	return &list[0]
}
