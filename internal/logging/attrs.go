package logging

import "log/slog"

func Net(name string) slog.Attr {
	return slog.String("net", name)
}

func RunID(id string) slog.Attr {
	return slog.String("run_id", id)
}

func Transition(id string) slog.Attr {
	return slog.String("transition", id)
}

func Place(id string) slog.Attr {
	return slog.String("place", id)
}

func Step(n int) slog.Attr {
	return slog.Int("step", n)
}

func Status[T ~string](status T) slog.Attr {
	return slog.String("status", string(status))
}

func Err(err error) slog.Attr {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return slog.String("err", msg)
}
