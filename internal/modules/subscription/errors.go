package subscription

import "errors"

var (
	ErrSelfFollow       = errors.New("Вы не можете подписаться на самого себя")
	ErrAlreadyFollowing = errors.New("Вы уже подписаны на этого автора")
	ErrNotFollowing     = errors.New("Автор не в подписках.")
	ErrAuthorNotFound   = errors.New("author not found")
)
