package grpcweb

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	maxBody     = 4 << 20
	contentText = "application/grpc-web-text"
)

// Bridge translates gRPC-Web (browser HTTP/1.1) into native gRPC calls.
type Bridge struct {
	conn   grpc.ClientConnInterface
	closer io.Closer
}

// Dial connects a bridge to the gRPC server at addr (e.g. "localhost:50051").
func Dial(addr string) (*Bridge, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("grpcweb dial: %w", err)
	}
	return &Bridge{conn: conn, closer: conn}, nil
}

// New wraps an existing connection. The caller keeps ownership of it.
func New(conn grpc.ClientConnInterface) *Bridge {
	return &Bridge{conn: conn}
}

func (b *Bridge) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer.Close()
}

// ServeHTTP forwards one unary call. The request path is the gRPC method path.
func (b *Bridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "application/grpc-web") {
		http.Error(w, "not grpc-web", http.StatusUnsupportedMediaType)
		return
	}
	text := strings.HasPrefix(ct, contentText)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		writeError(w, text, codes.InvalidArgument, "read body failed")
		return
	}
	if text {
		if body, err = base64.StdEncoding.DecodeString(string(body)); err != nil {
			writeError(w, text, codes.InvalidArgument, "bad base64 body")
			return
		}
	}
	payload, err := unframe(body)
	if err != nil {
		writeError(w, text, codes.InvalidArgument, err.Error())
		return
	}

	md := metadata.MD{}
	if vals := r.Header.Values("Authorization"); len(vals) > 0 {
		md.Set("authorization", vals...)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		md.Set("x-forwarded-for", host)
	} else if r.RemoteAddr != "" {
		md.Set("x-forwarded-for", r.RemoteAddr)
	}
	if id := chimw.GetReqID(r.Context()); id != "" {
		md.Set("x-request-id", id)
	}
	ctx := metadata.NewOutgoingContext(r.Context(), md)

	// bytes pass through untouched, the server does the decoding
	resp := &rawMsg{}
	err = b.conn.Invoke(ctx, r.URL.Path, &rawMsg{data: payload}, resp, grpc.ForceCodec(rawCodec{}))
	if err != nil {
		st, _ := status.FromError(err)
		log.Debug().Str("path", r.URL.Path).Str("code", st.Code().String()).Msg("grpc-web call failed")
		writeError(w, text, st.Code(), st.Message())
		return
	}
	writeSuccess(w, text, resp.data)
}

// unframe returns the message of the first data frame: 1-byte flag, 4-byte
// big-endian length, payload.
func unframe(body []byte) ([]byte, error) {
	if len(body) < 5 {
		return nil, fmt.Errorf("body too short")
	}
	if body[0]&0x80 != 0 {
		return nil, fmt.Errorf("expected data frame")
	}
	n := binary.BigEndian.Uint32(body[1:5])
	if uint64(n)+5 > uint64(len(body)) {
		return nil, fmt.Errorf("incomplete frame")
	}
	return body[5 : 5+n], nil
}

// rawMsg wraps raw protobuf bytes.
type rawMsg struct{ data []byte }

// rawCodec passes bytes through without marshal/unmarshal.
type rawCodec struct{}

func (rawCodec) Marshal(v any) ([]byte, error) {
	return v.(*rawMsg).data, nil
}

func (rawCodec) Unmarshal(data []byte, v any) error {
	m := v.(*rawMsg)
	m.data = append([]byte(nil), data...)
	return nil
}

func (rawCodec) Name() string { return "proto" }

func frame(flag byte, data []byte) []byte {
	f := make([]byte, 5+len(data))
	f[0] = flag
	binary.BigEndian.PutUint32(f[1:5], uint32(len(data)))
	copy(f[5:], data)
	return f
}

func trailer(code codes.Code, msg string) []byte {
	t := fmt.Sprintf("grpc-status:%d\r\n", code)
	if msg != "" {
		msg = strings.NewReplacer("\r", " ", "\n", " ").Replace(msg)
		t += "grpc-message:" + msg + "\r\n"
	}
	return frame(0x80, []byte(t))
}

func write(w http.ResponseWriter, text bool, out []byte) {
	ct := "application/grpc-web+proto"
	if text {
		ct = contentText + "+proto"
		out = []byte(base64.StdEncoding.EncodeToString(out))
	}
	w.Header().Set("Content-Type", ct)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func writeError(w http.ResponseWriter, text bool, code codes.Code, msg string) {
	write(w, text, trailer(code, msg))
}

func writeSuccess(w http.ResponseWriter, text bool, data []byte) {
	write(w, text, append(frame(0x00, data), trailer(codes.OK, "")...))
}
