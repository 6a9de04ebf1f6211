//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"
)

type x11Backend struct{}

func newBackend() platformBackend {
	return x11Backend{}
}

func runningOnWayland() bool {
	sessionType := strings.ToLower(strings.TrimSpace(os.Getenv("XDG_SESSION_TYPE")))
	if sessionType == "wayland" {
		return true
	}
	return os.Getenv("WAYLAND_DISPLAY") != ""
}

func connect() (*xgb.Conn, *xproto.ScreenInfo, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, nil, fmt.Errorf("connect X server: %w", err)
	}
	setup := xproto.Setup(conn)
	if setup == nil {
		conn.Close()
		return nil, nil, fmt.Errorf("xproto setup unavailable")
	}
	screen := setup.DefaultScreen(conn)
	if screen == nil {
		conn.Close()
		return nil, nil, fmt.Errorf("xproto screen unavailable")
	}
	return conn, screen, nil
}

func (x11Backend) Monitors() ([]MonitorInfo, error) {
	conn, screen, err := connect()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	monitors, err := fetchMonitors(conn, screen.Root)
	if err != nil {
		// no RandR: the whole root window is one monitor
		return []MonitorInfo{{
			Name:    "screen",
			Rect:    image.Rect(0, 0, int(screen.WidthInPixels), int(screen.HeightInPixels)),
			Primary: true,
		}}, nil
	}
	if len(monitors) == 0 {
		return nil, errNoMonitors
	}
	return monitors, nil
}

func (x11Backend) RootImage(r image.Rectangle) (*image.RGBA, error) {
	if r.Empty() {
		return nil, fmt.Errorf("root image: empty rectangle")
	}
	conn, screen, err := connect()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	reply, err := xproto.GetImage(conn, xproto.ImageFormatZPixmap, xproto.Drawable(screen.Root),
		int16(r.Min.X), int16(r.Min.Y), uint16(r.Dx()), uint16(r.Dy()), ^uint32(0)).Reply()
	if err != nil {
		return nil, fmt.Errorf("root pixels: %w", err)
	}
	return xImageToRGBA(xproto.Setup(conn), reply, r.Dx(), r.Dy())
}

func (x11Backend) FindWindow(title string) (uint32, error) {
	conn, screen, err := connect()
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	ids, err := clientList(conn, screen.Root)
	if err != nil {
		return 0, err
	}
	for _, win := range ids {
		name := readUTF8Property(conn, win, "_NET_WM_NAME")
		if name == "" {
			name = readStringProperty(conn, win, "WM_NAME")
		}
		if name == title {
			return uint32(win), nil
		}
	}
	return 0, errWindowNotFound
}

func (x11Backend) ApplyHints(id uint32, h Hints) error {
	conn, screen, err := connect()
	if err != nil {
		return err
	}
	defer conn.Close()

	win := xproto.Window(id)
	if h.Undecorated {
		if err := setMotifDecorations(conn, win, false); err != nil {
			return err
		}
	}
	var states []string
	if h.Fullscreen {
		states = append(states, "_NET_WM_STATE_FULLSCREEN")
	}
	if h.Above {
		states = append(states, "_NET_WM_STATE_ABOVE")
	}
	for _, s := range states {
		if err := addWMState(conn, screen.Root, win, s); err != nil {
			return err
		}
	}
	return nil
}

// Motif hints: flags, functions, decorations, input mode, status.
const motifHintsDecorations = 1 << 1

func setMotifDecorations(conn *xgb.Conn, win xproto.Window, decorated bool) error {
	atom, err := internAtom(conn, "_MOTIF_WM_HINTS")
	if err != nil {
		return err
	}
	var deco uint32
	if decorated {
		deco = 1
	}
	data := make([]byte, 5*4)
	xgb.Put32(data[0:], motifHintsDecorations)
	xgb.Put32(data[8:], deco)
	if err := xproto.ChangePropertyChecked(conn, xproto.PropModeReplace, win, atom, atom, 32, 5, data).Check(); err != nil {
		return fmt.Errorf("set _MOTIF_WM_HINTS: %w", err)
	}
	return nil
}

const netWMStateAdd = 1

func addWMState(conn *xgb.Conn, root, win xproto.Window, state string) error {
	wmState, err := internAtom(conn, "_NET_WM_STATE")
	if err != nil {
		return err
	}
	atom, err := internAtom(conn, state)
	if err != nil {
		return err
	}
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   wmState,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{netWMStateAdd, uint32(atom), 0, 1, 0}),
	}
	mask := uint32(xproto.EventMaskSubstructureNotify | xproto.EventMaskSubstructureRedirect)
	if err := xproto.SendEventChecked(conn, false, root, mask, string(ev.Bytes())).Check(); err != nil {
		return fmt.Errorf("request %s: %w", state, err)
	}
	return nil
}

func fetchMonitors(conn *xgb.Conn, root xproto.Window) ([]MonitorInfo, error) {
	if err := randr.Init(conn); err != nil {
		return nil, fmt.Errorf("init randr: %w", err)
	}
	res, err := randr.GetScreenResources(conn, root).Reply()
	if err != nil {
		return nil, fmt.Errorf("randr screen resources: %w", err)
	}
	primaryOutput := randr.Output(0)
	if primary, err := randr.GetOutputPrimary(conn, root).Reply(); err == nil {
		primaryOutput = primary.Output
	}
	monitors := make([]MonitorInfo, 0, len(res.Outputs))
	for _, output := range res.Outputs {
		info, err := randr.GetOutputInfo(conn, output, res.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if info.Connection != randr.ConnectionConnected || info.Crtc == 0 {
			continue
		}
		crtc, err := randr.GetCrtcInfo(conn, info.Crtc, res.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		monitors = append(monitors, MonitorInfo{
			Index:   len(monitors),
			Name:    strings.TrimSpace(string(info.Name)),
			Rect:    image.Rect(int(crtc.X), int(crtc.Y), int(crtc.X)+int(crtc.Width), int(crtc.Y)+int(crtc.Height)),
			Primary: output == primaryOutput,
		})
	}
	return monitors, nil
}

func clientList(conn *xgb.Conn, root xproto.Window) ([]xproto.Window, error) {
	atom, err := internAtom(conn, "_NET_CLIENT_LIST")
	if err != nil {
		return nil, err
	}
	reply, err := xproto.GetProperty(conn, false, root, atom, xproto.AtomWindow, 0, 1<<16).Reply()
	if err != nil {
		return nil, fmt.Errorf("read _NET_CLIENT_LIST: %w", err)
	}
	if reply.Format != 32 {
		return nil, nil
	}
	ids := make([]xproto.Window, 0, reply.ValueLen)
	for i := 0; i < int(reply.ValueLen); i++ {
		ids = append(ids, xproto.Window(xgb.Get32(reply.Value[i*4:])))
	}
	return ids, nil
}

func internAtom(conn *xgb.Conn, name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("intern %s: %w", name, err)
	}
	return reply.Atom, nil
}

func readUTF8Property(conn *xgb.Conn, win xproto.Window, name string) string {
	atom, err := internAtom(conn, name)
	if err != nil {
		return ""
	}
	utf8StringAtom, err := internAtom(conn, "UTF8_STRING")
	if err != nil {
		return ""
	}
	reply, err := xproto.GetProperty(conn, false, win, atom, utf8StringAtom, 0, 1<<16).Reply()
	if err != nil || reply.ValueLen == 0 {
		return ""
	}
	return strings.TrimRight(string(reply.Value), "\x00")
}

func readStringProperty(conn *xgb.Conn, win xproto.Window, name string) string {
	atom, err := internAtom(conn, name)
	if err != nil {
		return ""
	}
	reply, err := xproto.GetProperty(conn, false, win, atom, xproto.AtomString, 0, 1<<16).Reply()
	if err != nil || reply.ValueLen == 0 {
		return ""
	}
	return strings.TrimRight(string(reply.Value), "\x00")
}

// xImageToRGBA converts a ZPixmap reply in BGRx byte order.
func xImageToRGBA(setup *xproto.SetupInfo, reply *xproto.GetImageReply, width, height int) (*image.RGBA, error) {
	if setup == nil {
		return nil, fmt.Errorf("xproto setup unavailable")
	}
	if reply == nil || len(reply.Data) == 0 {
		return nil, fmt.Errorf("root pixels: empty image data")
	}
	bitsPerPixel := 0
	for _, format := range setup.PixmapFormats {
		if format.Depth == reply.Depth {
			bitsPerPixel = int(format.BitsPerPixel)
			break
		}
	}
	bytesPerPixel := bitsPerPixel / 8
	if bytesPerPixel < 3 {
		return nil, fmt.Errorf("unsupported depth %d (%d bpp)", reply.Depth, bitsPerPixel)
	}
	stride := len(reply.Data) / height
	if stride*height != len(reply.Data) || stride < width*bytesPerPixel {
		return nil, fmt.Errorf("root pixels: unexpected stride")
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := reply.Data[y*stride:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < width; x++ {
			s := row[x*bytesPerPixel:]
			d := dst[x*4:]
			// the root window has no meaningful alpha channel
			d[0], d[1], d[2], d[3] = s[2], s[1], s[0], 0xFF
		}
	}
	return img, nil
}
