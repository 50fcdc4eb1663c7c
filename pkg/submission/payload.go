package submission

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-formfill/pkg/model"
)

// Build assembles a generated response into the identifier to values
// structure the submission endpoint expects. It mirrors the pre-fill link
// encoding: checkbox answers repeat the identifier, and an "other" answer sets
// the sentinel on the primary identifier plus the free text under the
// derived ".other_option_response" identifier.
func Build(resp model.Response) url.Values {
	values := make(url.Values, len(resp))
	for _, id := range resp.IDs() {
		answer := resp[id]
		key := string(id)
		for _, value := range answer.Values {
			values.Add(key, value)
		}
		if answer.Other == "" {
			continue
		}
		if !contains(answer.Values, model.OtherOptionValue) {
			values.Add(key, model.OtherOptionValue)
		}
		values.Set(string(id.OtherResponseID()), answer.Other)
	}
	return values
}

// Decode reverses Build, folding ".other_option_response" identifiers back
// into the answer of their primary identifier.
func Decode(values url.Values) (model.Response, error) {
	resp := make(model.Response, len(values))
	others := make(map[model.EntryID]string)

	for key, vals := range values {
		if primary, ok := strings.CutSuffix(key, model.OtherResponseSuffix); ok {
			if len(vals) != 1 {
				return nil, fmt.Errorf("submission: %s carries %d values, want 1", key, len(vals))
			}
			others[model.EntryID(primary)] = vals[0]
			continue
		}
		answer := resp[model.EntryID(key)]
		answer.Values = append(answer.Values, vals...)
		resp[model.EntryID(key)] = answer
	}

	for id, other := range others {
		answer, ok := resp[id]
		if !ok || !contains(answer.Values, model.OtherOptionValue) {
			return nil, fmt.Errorf("submission: other response for %s without %s", id, model.OtherOptionValue)
		}
		answer.Other = other
		resp[id] = answer
	}
	return resp, nil
}

// Encode serialises values as an application/x-www-form-urlencoded body with
// keys in sorted order.
func Encode(values url.Values) string {
	return values.Encode()
}

func contains(values []string, want string) bool {
	for _, value := range values {
		if value == want {
			return true
		}
	}
	return false
}
