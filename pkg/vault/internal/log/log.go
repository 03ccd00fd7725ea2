package storagelog

import (
	"fmt"

	"go.uber.org/zap"
)

// headMsg is a distinctive part of all messages.
const headMsg = "local record storage operation"

// Write writes message about vault's operation to logger.
func Write(logger *zap.Logger, fields ...zap.Field) {
	logger.Debug(headMsg, fields...)
}

// OpField returns logger's field for operation type.
func OpField(op string) zap.Field {
	return zap.String("op", op)
}

// LabelField returns logger's field for record label.
func LabelField(label string) zap.Field {
	return zap.String("label", label)
}

// KeyField returns logger's field for record key.
func KeyField(key string) zap.Field {
	return zap.String("key", key)
}

// RootField returns logger's field for storage root.
func RootField(root fmt.Stringer) zap.Field {
	return zap.Stringer("root", root)
}
