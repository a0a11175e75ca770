package consumer

import "errors"

var errUndecodable = errors.New("undecodable event")

func isUndecodable(err error) bool {
	return errors.Is(err, errUndecodable)
}
