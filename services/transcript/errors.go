package transcript

// ErrorKind is the stable failure taxonomy the pipeline surfaces to callers.
// Individual strategy failures never cross this boundary.
type ErrorKind int

const (
	// ErrVideoUnavailable: the pre-flight check reported the video does not
	// exist or is blocked; no strategy was attempted.
	ErrVideoUnavailable ErrorKind = iota

	// ErrNoCaptionsFound: every strategy ran and none produced a transcript.
	ErrNoCaptionsFound

	// ErrTransientNetwork: the pre-flight check itself could not complete.
	ErrTransientNetwork
)

func (k ErrorKind) String() string {
	switch k {
	case ErrVideoUnavailable:
		return "video_unavailable"
	case ErrNoCaptionsFound:
		return "no_captions_found"
	case ErrTransientNetwork:
		return "transient_network_error"
	}
	return "unknown"
}

// AcquisitionError is the aggregate failure returned by the pipeline.
type AcquisitionError struct {
	Kind    ErrorKind
	Message string
}

func (e *AcquisitionError) Error() string {
	return e.Message
}
