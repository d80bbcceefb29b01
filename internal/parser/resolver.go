package parser

import (
	"strings"

	"cashmate/internal/models"
)

// ResolveTransferAccounts determines the source and destination accounts of
// a transfer from lowercased text. Positional "dari X ke Y" phrasing is
// resolved first; withdrawal and top-up phrasing then overrides the result.
// Unresolvable sides default to the cash account.
func (t *Tables) ResolveTransferAccounts(text string) (source, destination string) {
	source = models.DefaultAccount
	destination = models.DefaultAccount

	words := strings.Fields(text)

	dariIdx, keIdx := -1, -1
	for i, word := range words {
		switch word {
		case "dari":
			dariIdx = i
		case "ke":
			keIdx = i
		}
	}

	switch {
	case dariIdx != -1 && keIdx != -1 && keIdx > dariIdx:
		if dariIdx+1 < len(words) {
			source = t.DetectAccountWord(words[dariIdx+1])
		}
		if keIdx+1 < len(words) {
			destination = t.DetectAccountWord(words[keIdx+1])
		}
	case keIdx != -1:
		// "topup gopay 30k ke dana": the word before "ke" may be an
		// action keyword rather than the source account.
		if keIdx > 0 {
			prev := words[keIdx-1]
			if t.isSkipWord(prev) {
				if keIdx > 1 {
					source = t.DetectAccountWord(words[keIdx-2])
				}
			} else {
				source = t.DetectAccountWord(prev)
			}
		}
		if keIdx+1 < len(words) {
			next := words[keIdx+1]
			if !t.isSkipWord(next) {
				destination = t.DetectAccountWord(next)
			}
		}
	}

	if t.IsWithdrawal(text) {
		if bank, ok := t.findBank(words); ok {
			return bank, models.DefaultAccount
		}
	} else if t.IsTopUp(text) {
		if account, ok := t.findTopUpTarget(words); ok {
			return models.DefaultAccount, account
		}
	}

	return source, destination
}

// findBank returns the first token that names a bank.
func (t *Tables) findBank(words []string) (string, bool) {
	for _, word := range words {
		resolved := t.DetectAccountWord(word)
		if t.isBankName(resolved) {
			return resolved, true
		}
	}
	return "", false
}

// findTopUpTarget returns the first token that resolves to a recognized
// non-cash account.
func (t *Tables) findTopUpTarget(words []string) (string, bool) {
	for _, word := range words {
		lower := strings.ToLower(word)
		if t.isSkipWord(lower) {
			continue
		}
		resolved := t.DetectAccountWord(lower)
		if resolved == models.DefaultAccount || !t.isKnownAccount(resolved) {
			continue
		}
		return resolved, true
	}
	return "", false
}

// isKnownAccount reports whether name is a bank or a canonical account from
// the tables, as opposed to an arbitrary token carried through verbatim.
func (t *Tables) isKnownAccount(name string) bool {
	if t.isBankName(name) {
		return true
	}
	for _, entry := range t.AccountWords {
		if entry.Account == name {
			return true
		}
	}
	return false
}
