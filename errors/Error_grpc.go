package errors

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/protoadapt"
	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// errorDetails encodes a single *Error level as a protobuf Any, for use as gRPC status details.
func errorDetails(e *Error) (protoadapt.MessageV1, error) {
	fields := map[string]interface{}{
		"code":    int32(e.code),
		"message": e.message,
	}

	if e.data != nil {
		fields["data"] = string(e.data.EncodeErrorData())
	}

	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}

	return anypb.New(s)
}

// WrapGRPC wraps an error with gRPC status details, one detail per level of the error chain.
func WrapGRPC(err error) error {
	if err == nil {
		return nil
	}

	castedErr, ok := err.(*Error)
	if !ok {
		castedErr = &Error{code: ERR_ERROR, message: err.Error()}
	}

	// already wrapped, don't wrap it with gRPC details again
	if castedErr.wrappedErr != nil {
		if _, ok := status.FromError(castedErr.wrappedErr); ok {
			return err
		}
	}

	var wrappedErrDetails []protoadapt.MessageV1

	var current error = castedErr

	for current != nil {
		tErr, ok := current.(*Error)
		if !ok {
			tErr = &Error{code: ERR_ERROR, message: current.Error()}
		}

		details, pbErr := errorDetails(tErr)
		if pbErr != nil {
			return &Error{
				code:       ERR_ERROR,
				message:    "error serializing error details to protobuf Any",
				wrappedErr: err,
			}
		}

		wrappedErrDetails = append(wrappedErrDetails, details)

		if !ok {
			break
		}

		current = tErr.wrappedErr
	}

	st := status.New(ErrorCodeToGRPCCode(castedErr.code), castedErr.message)

	st, detailsErr := st.WithDetails(wrappedErrDetails...)
	if detailsErr != nil {
		return &Error{
			code:       ERR_ERROR,
			message:    "error adding details to the error's gRPC status",
			wrappedErr: err,
		}
	}

	return st.Err()
}

// UnwrapGRPC rebuilds the *Error chain encoded by WrapGRPC.
func UnwrapGRPC(err error) *Error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return &Error{
			code:       ERR_ERROR,
			message:    "error unwrapping gRPC details",
			wrappedErr: err,
		}
	}

	if len(st.Details()) == 0 {
		return &Error{
			code:    ERR_ERROR,
			message: err.Error(),
		}
	}

	var prevErr, currErr *Error

	for i := len(st.Details()) - 1; i >= 0; i-- {
		detailAny, ok := st.Details()[i].(*anypb.Any)
		if !ok {
			continue
		}

		var s structpb.Struct
		if err := anypb.UnmarshalTo(detailAny, &s, proto.UnmarshalOptions{}); err != nil {
			continue
		}

		fields := s.GetFields()

		currErr = &Error{
			code:    ERR(int32(fields["code"].GetNumberValue())),
			message: fields["message"].GetStringValue(),
		}

		if raw := fields["data"].GetStringValue(); raw != "" {
			if data, dataErr := GetErrorData([]byte(raw)); dataErr == nil {
				currErr.data = data
			}
		}

		if prevErr != nil {
			currErr.wrappedErr = prevErr
		}

		prevErr = currErr
	}

	if currErr == nil {
		return &Error{
			code:    ERR_ERROR,
			message: err.Error(),
		}
	}

	return currErr
}

// ErrorCodeToGRPCCode maps application error codes to gRPC status codes.
func ErrorCodeToGRPCCode(code ERR) codes.Code {
	switch code {
	case ERR_UNKNOWN:
		return codes.Unknown
	case ERR_INVALID_ARGUMENT:
		return codes.InvalidArgument
	case ERR_NOT_FOUND, ERR_TX_NOT_FOUND, ERR_TX_MISSING_UTXO:
		return codes.NotFound
	case ERR_TX_ALREADY_EXISTS:
		return codes.AlreadyExists
	case ERR_TX_INVALID, ERR_TX_BAD_SIGNATURE, ERR_TX_DOUBLE_CLAIM, ERR_TX_NEGATIVE_OUTPUT, ERR_TX_VALUE_INFLATION:
		return codes.FailedPrecondition
	default:
		return codes.Internal
	}
}

func isGRPCWrappedError(err error) bool {
	if err == nil {
		return false
	}

	if _, ok := err.(*Error); ok {
		return false
	}

	_, ok := status.FromError(err)

	return ok
}
