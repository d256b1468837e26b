package model

import "fmt"

// Restart is the value of the Restart= service option.
type Restart string

const (
	RestartNo         Restart = "no"
	RestartAlways     Restart = "always"
	RestartOnSuccess  Restart = "on-success"
	RestartOnFailure  Restart = "on-failure"
	RestartOnWatchdog Restart = "on-watchdog"
	RestartOnAbort    Restart = "on-abort"
)

var restartValues = []Restart{
	RestartNo,
	RestartAlways,
	RestartOnSuccess,
	RestartOnFailure,
	RestartOnWatchdog,
	RestartOnAbort,
}

// ParseRestart converts s into a Restart, rejecting unknown values.
func ParseRestart(s string) (Restart, error) {
	for _, v := range restartValues {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid Restart value %q (want one of %v)", s, restartValues)
}

func (r Restart) String() string { return string(r) }

func (r Restart) MarshalText() ([]byte, error) { return []byte(r), nil }

func (r *Restart) UnmarshalText(text []byte) error {
	v, err := ParseRestart(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// ServiceType is the value of the Type= service option.
type ServiceType string

const (
	ServiceTypeSimple  ServiceType = "simple"
	ServiceTypeOneshot ServiceType = "oneshot"
	ServiceTypeForking ServiceType = "forking"
	ServiceTypeNotify  ServiceType = "notify"
	ServiceTypeDBus    ServiceType = "dbus"
	ServiceTypeIdle    ServiceType = "idle"
)

var serviceTypeValues = []ServiceType{
	ServiceTypeSimple,
	ServiceTypeOneshot,
	ServiceTypeForking,
	ServiceTypeNotify,
	ServiceTypeDBus,
	ServiceTypeIdle,
}

// ParseServiceType converts s into a ServiceType, rejecting unknown values.
func ParseServiceType(s string) (ServiceType, error) {
	for _, v := range serviceTypeValues {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid Type value %q (want one of %v)", s, serviceTypeValues)
}

func (t ServiceType) String() string { return string(t) }

func (t ServiceType) MarshalText() ([]byte, error) { return []byte(t), nil }

func (t *ServiceType) UnmarshalText(text []byte) error {
	v, err := ParseServiceType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// RemainAfterExit is the value of the RemainAfterExit= service option.
type RemainAfterExit string

const (
	RemainAfterExitNo  RemainAfterExit = "no"
	RemainAfterExitYes RemainAfterExit = "yes"
)

// ParseRemainAfterExit converts s into a RemainAfterExit, rejecting unknown values.
func ParseRemainAfterExit(s string) (RemainAfterExit, error) {
	switch RemainAfterExit(s) {
	case RemainAfterExitNo, RemainAfterExitYes:
		return RemainAfterExit(s), nil
	}
	return "", fmt.Errorf("invalid RemainAfterExit value %q (want no or yes)", s)
}

func (r RemainAfterExit) String() string { return string(r) }

func (r RemainAfterExit) MarshalText() ([]byte, error) { return []byte(r), nil }

func (r *RemainAfterExit) UnmarshalText(text []byte) error {
	v, err := ParseRemainAfterExit(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
