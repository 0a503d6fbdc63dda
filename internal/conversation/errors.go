package conversation

import "errors"

var (
	// ErrSessionStore возвращается при сбое хранилища сессий
	ErrSessionStore = errors.New("conversation: session store failure")

	// ErrStaleSession фиксируется в логах, когда шаг выполняется без
	// обязательных данных предыдущих шагов. Наружу не поднимается:
	// машина сбрасывает сессию и просит начать заново
	ErrStaleSession = errors.New("conversation: stale session data")
)
