package whaturl

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/badu/whaturl/charset"
	"github.com/badu/whaturl/cursor"
	"github.com/badu/whaturl/diag"
	"github.com/badu/whaturl/host"
	"github.com/badu/whaturl/percent"
)

// specialSchemes and their default ports, per the WHATWG URL Standard.
var specialSchemes = map[string]bool{
	"ftp": true, "file": true, "http": true, "https": true, "ws": true, "wss": true,
}

var defaultPorts = map[string]uint16{
	"ftp": 21, "http": 80, "https": 443, "ws": 80, "wss": 443,
}

func isSpecial(scheme string) bool { return specialSchemes[scheme] }

type parserState int

const (
	stateSchemeStart parserState = iota
	stateScheme
	stateNoScheme
	stateSpecialRelativeOrAuthority
	statePathOrAuthority
	stateRelative
	stateRelativeSlash
	stateSpecialAuthoritySlashes
	stateSpecialAuthorityIgnoreSlashes
	stateAuthority
	stateHost
	statePort
	stateFile
	stateFileSlash
	stateFileHost
	statePathStart
	statePath
	stateOpaquePath
	stateQuery
	stateFragment
)

// parser holds every mutable variable the state machine (twenty states;
// the WHATWG host and hostname states share stateHost) reads and writes while walking one input string. It is used once per
// Parse call and discarded.
type parser struct {
	cur    *cursor.Cursor
	state  parserState
	errors diag.Errors
	failed bool

	buffer            []rune
	atSignSeen        bool
	insideBrackets    bool
	passwordTokenSeen bool

	scheme   string
	username strings.Builder
	password strings.Builder
	host     *host.Host
	port     *uint16
	path     Path
	query    *strings.Builder
	fragment *strings.Builder
}

func (p *parser) fail(kind diag.Kind) {
	p.errors = append(p.errors, diag.New(kind))
	p.failed = true
}

func (p *parser) warn(kind diag.Kind) {
	p.errors = append(p.errors, diag.New(kind))
}

// Parse runs the WHATWG state machine over input, resolving
// relative references against base when present, and returns the
// resulting Outcome.
func Parse(input string, base *Value) Outcome {
	var errs diag.Errors
	cleaned := preprocess(input, &errs)

	p := &parser{
		cur:   cursor.New(cleaned),
		state: stateSchemeStart,
		path:  NewPath(),
	}

	for {
		p.step(base)
		if p.failed {
			errs = append(errs, p.errors...)
			return Outcome{Kind: Failure, Errors: errs}
		}
		if p.cur.PointedAt().IsEof() {
			break
		}
		p.cur.Increase(1)
	}

	errs = append(errs, p.errors...)

	value := Value{
		Scheme:   p.scheme,
		Username: p.username.String(),
		Password: p.password.String(),
		Host:     p.host,
		Port:     p.port,
		Path:     p.path,
	}
	if p.query != nil {
		q := p.query.String()
		value.Query = &q
	}
	if p.fragment != nil {
		f := p.fragment.String()
		value.Fragment = &f
	}

	if len(errs) == 0 {
		return Outcome{Kind: Success, Value: value}
	}
	return Outcome{Kind: SuccessWithWarnings, Value: value, Warnings: errs}
}

func (p *parser) step(base *Value) {
	pa := p.cur.PointedAt()

	switch p.state {

	case stateSchemeStart:
		if pa.IsCodePoint() && asciiAlpha(pa.CodePoint) {
			p.buffer = append(p.buffer, unicode.ToLower(pa.CodePoint))
			p.state = stateScheme
		} else {
			p.state = stateNoScheme
			p.cur.Decrease(1)
		}

	case stateScheme:
		switch {
		case pa.IsCodePoint() && (asciiAlphanumeric(pa.CodePoint) || pa.CodePoint == '+' || pa.CodePoint == '-' || pa.CodePoint == '.'):
			p.buffer = append(p.buffer, unicode.ToLower(pa.CodePoint))
		case pa.Is(':'):
			p.scheme = string(p.buffer)
			p.buffer = nil

			switch {
			case p.scheme == "file":
				if !p.cur.DoesRemainingStartWith("//") {
					p.warn(diag.SpecialSchemeMissingFollowingSolidus)
				}
				p.state = stateFile
			case isSpecial(p.scheme) && base != nil && base.Scheme == p.scheme:
				p.state = stateSpecialRelativeOrAuthority
			case isSpecial(p.scheme):
				p.state = stateSpecialAuthoritySlashes
			case p.cur.DoesRemainingStartWith("/"):
				p.state = statePathOrAuthority
				p.cur.Increase(1)
			default:
				p.path = NewOpaquePath("")
				p.state = stateOpaquePath
			}
		default:
			p.buffer = nil
			p.state = stateNoScheme
			p.cur.Reset()
			p.cur.Decrease(1)
		}

	case stateNoScheme:
		switch {
		case base == nil || (base.Path.IsOpaque() && !pa.Is('#')):
			p.fail(diag.MissingSchemeNonRelativeURL)
		case base.Path.IsOpaque() && pa.Is('#'):
			p.scheme = base.Scheme
			p.path = base.Path
			p.query = copyBuilder(base.Query)
			p.fragment = new(strings.Builder)
			p.state = stateFragment
		case base.Scheme != "file":
			p.state = stateRelative
			p.cur.Decrease(1)
		default:
			p.state = stateFile
			p.cur.Decrease(1)
		}

	case stateSpecialRelativeOrAuthority:
		if pa.Is('/') && p.cur.DoesRemainingStartWith("/") {
			p.state = stateSpecialAuthorityIgnoreSlashes
			p.cur.Increase(1)
		} else {
			p.warn(diag.SpecialSchemeMissingFollowingSolidus)
			p.state = stateRelative
			p.cur.Decrease(1)
		}

	case statePathOrAuthority:
		if pa.Is('/') {
			p.state = stateAuthority
		} else {
			p.state = statePath
			p.cur.Decrease(1)
		}

	case stateRelative:
		p.scheme = base.Scheme
		switch {
		case pa.Is('/'):
			p.state = stateRelativeSlash
		case isSpecial(p.scheme) && pa.Is('\\'):
			p.warn(diag.InvalidReverseSolidus)
			p.state = stateRelativeSlash
		default:
			p.username.Reset()
			p.username.WriteString(base.Username)
			p.password.Reset()
			p.password.WriteString(base.Password)
			p.host = base.Host
			p.port = base.Port
			p.path = base.Path.copy()
			p.query = copyBuilder(base.Query)

			switch {
			case pa.Is('?'):
				p.query = new(strings.Builder)
				p.state = stateQuery
			case pa.Is('#'):
				p.fragment = new(strings.Builder)
				p.state = stateFragment
			case pa.IsCodePoint():
				p.query = nil
				// Unlike PATH and FILE, RELATIVE drops the last segment
				// unconditionally — it does not defer to Path.shorten's
				// Windows-drive-letter exception.
				if !p.path.IsOpaque() && !p.path.isEmpty() {
					segs := p.path.Segments()
					p.path = Path{segments: append([]string(nil), segs[:len(segs)-1]...)}
				}
				p.state = statePath
				p.cur.Decrease(1)
			}
		}

	case stateRelativeSlash:
		switch {
		case isSpecial(p.scheme) && (pa.Is('/') || pa.Is('\\')):
			if pa.Is('\\') {
				p.warn(diag.InvalidReverseSolidus)
			}
			p.state = stateSpecialAuthorityIgnoreSlashes
		case pa.Is('/'):
			p.state = stateAuthority
		default:
			p.username.Reset()
			p.username.WriteString(base.Username)
			p.password.Reset()
			p.password.WriteString(base.Password)
			p.host = base.Host
			p.port = base.Port
			p.state = statePath
			p.cur.Decrease(1)
		}

	case stateSpecialAuthoritySlashes:
		if pa.Is('/') && p.cur.DoesRemainingStartWith("/") {
			p.state = stateSpecialAuthorityIgnoreSlashes
			p.cur.Increase(1)
		} else {
			p.warn(diag.SpecialSchemeMissingFollowingSolidus)
			p.state = stateSpecialAuthorityIgnoreSlashes
			p.cur.Decrease(1)
		}

	case stateSpecialAuthorityIgnoreSlashes:
		if !(pa.Is('/') || pa.Is('\\')) {
			p.state = stateAuthority
			p.cur.Decrease(1)
		} else {
			p.warn(diag.SpecialSchemeMissingFollowingSolidus)
		}

	case stateAuthority:
		switch {
		case pa.Is('@'):
			p.warn(diag.InvalidCredentials)
			if p.atSignSeen {
				p.buffer = append([]rune("%40"), p.buffer...)
			}
			p.atSignSeen = true
			for _, c := range p.buffer {
				if c == ':' && !p.passwordTokenSeen {
					p.passwordTokenSeen = true
					continue
				}
				encoded := percent.EncodeCodePoint(c, charset.Userinfo)
				if p.passwordTokenSeen {
					p.password.WriteString(encoded)
				} else {
					p.username.WriteString(encoded)
				}
			}
			p.buffer = nil
		case pa.IsEof() || pa.IsAnyOf('/', '?', '#') || (isSpecial(p.scheme) && pa.Is('\\')):
			if p.atSignSeen && len(p.buffer) == 0 {
				p.fail(diag.HostMissing)
				return
			}
			p.cur.Decrease(len(p.buffer) + 1)
			p.buffer = nil
			p.state = stateHost
		default:
			p.buffer = append(p.buffer, pa.CodePoint)
		}

	case stateHost:
		switch {
		case pa.Is(':') && !p.insideBrackets:
			if len(p.buffer) == 0 {
				p.fail(diag.HostMissing)
				return
			}
			parsed, hostErrs := host.ParseHost(string(p.buffer), !isSpecial(p.scheme))
			p.errors = append(p.errors, hostErrs...)
			if hostErrs.HasFatal() {
				p.failed = true
				return
			}
			p.host = &parsed
			p.buffer = nil
			p.state = statePort
		case pa.IsEof() || pa.IsAnyOf('/', '?', '#') || (isSpecial(p.scheme) && pa.Is('\\')):
			p.cur.Decrease(1)
			if isSpecial(p.scheme) && len(p.buffer) == 0 {
				p.fail(diag.HostMissing)
				return
			}
			parsed, hostErrs := host.ParseHost(string(p.buffer), !isSpecial(p.scheme))
			p.errors = append(p.errors, hostErrs...)
			if hostErrs.HasFatal() {
				p.failed = true
				return
			}
			p.host = &parsed
			p.buffer = nil
			p.state = statePathStart
		default:
			if pa.IsCodePoint() {
				if pa.CodePoint == '[' {
					p.insideBrackets = true
				}
				if pa.CodePoint == ']' {
					p.insideBrackets = false
				}
				p.buffer = append(p.buffer, pa.CodePoint)
			}
		}

	case statePort:
		switch {
		case pa.IsCodePoint() && asciiDigit(pa.CodePoint):
			p.buffer = append(p.buffer, pa.CodePoint)
		case pa.IsEof() || pa.IsAnyOf('/', '?', '#') || (isSpecial(p.scheme) && pa.Is('\\')):
			if len(p.buffer) > 0 {
				n, err := strconv.ParseUint(string(p.buffer), 10, 64)
				if err != nil || n > 65535 {
					p.fail(diag.PortOutOfRange)
					return
				}
				portVal := uint16(n)
				if def, ok := defaultPorts[p.scheme]; ok && def == portVal {
					p.port = nil
				} else {
					p.port = &portVal
				}
				p.buffer = nil
			}
			p.state = statePathStart
			p.cur.Decrease(1)
		default:
			p.fail(diag.PortInvalid)
		}

	case stateFile:
		p.scheme = "file"
		emptyHost := host.NewEmpty()
		p.host = &emptyHost

		switch {
		case pa.IsAnyOf('/', '\\'):
			if pa.Is('\\') {
				p.warn(diag.InvalidReverseSolidus)
			}
			p.state = stateFileSlash
		case base != nil && base.Scheme == "file":
			p.host = base.Host
			p.path = base.Path.copy()
			p.query = copyBuilder(base.Query)

			switch {
			case pa.Is('?'):
				p.query = new(strings.Builder)
				p.state = stateQuery
			case pa.Is('#'):
				p.fragment = new(strings.Builder)
				p.state = stateFragment
			case pa.IsCodePoint():
				p.query = nil
				if !p.cur.DoesRemainingStartWithWindowsDriveLetter() {
					p.path = p.path.shorten(p.scheme)
				} else {
					p.warn(diag.FileInvalidWindowsDriveLetter)
					p.path = NewPath()
				}
				p.state = statePath
				p.cur.Decrease(1)
			}
		default:
			p.state = statePath
			p.cur.Decrease(1)
		}

	case stateFileSlash:
		switch {
		case pa.IsAnyOf('/', '\\'):
			if pa.Is('\\') {
				p.warn(diag.InvalidReverseSolidus)
			}
			p.state = stateFileHost
		default:
			if base != nil && base.Scheme == "file" {
				p.host = base.Host
				if !p.cur.DoesRemainingStartWithWindowsDriveLetter() {
					segs := base.Path.Segments()
					if len(segs) > 0 && isNormalizedWindowsDriveLetter(segs[0]) {
						p.path = p.path.append(segs[0])
					}
				}
			}
			p.state = statePath
			p.cur.Decrease(1)
		}

	case stateFileHost:
		if pa.IsEof() || pa.IsAnyOf('/', '\\', '?', '#') {
			p.cur.Decrease(1)
			switch {
			case isWindowsDriveLetter(string(p.buffer)):
				p.warn(diag.FileInvalidWindowsDriveLetterHost)
				p.state = statePath
			case len(p.buffer) == 0:
				empty := host.NewEmpty()
				p.host = &empty
				p.state = statePathStart
			default:
				parsed, hostErrs := host.ParseHost(string(p.buffer), !isSpecial(p.scheme))
				p.errors = append(p.errors, hostErrs...)
				if hostErrs.HasFatal() {
					p.failed = true
					return
				}
				if parsed.Kind == host.Domain && parsed.DomainVal == "localhost" {
					parsed = host.NewEmpty()
				}
				p.host = &parsed
				p.buffer = nil
				p.state = statePathStart
			}
		} else if pa.IsCodePoint() {
			p.buffer = append(p.buffer, pa.CodePoint)
		}

	case statePathStart:
		if isSpecial(p.scheme) {
			if pa.Is('\\') {
				p.warn(diag.InvalidReverseSolidus)
			}
			p.state = statePath
			if !pa.IsAnyOf('/', '\\') {
				p.cur.Decrease(1)
			}
		} else {
			switch {
			case pa.Is('?'):
				p.query = new(strings.Builder)
				p.state = stateQuery
			case pa.Is('#'):
				p.fragment = new(strings.Builder)
				p.state = stateFragment
			case pa.IsCodePoint():
				p.state = statePath
				if pa.CodePoint != '/' {
					p.cur.Decrease(1)
				}
			}
		}

	case statePath:
		special := isSpecial(p.scheme)
		if pa.IsEof() || pa.Is('/') || (special && pa.Is('\\')) || pa.Is('?') || pa.Is('#') {
			if special && pa.Is('\\') {
				p.warn(diag.InvalidReverseSolidus)
			}

			curBuffer := string(p.buffer)
			atSeparator := pa.Is('/') || (special && pa.Is('\\'))
			isDotDot := curBuffer == ".." || strings.EqualFold(curBuffer, ".%2e") ||
				strings.EqualFold(curBuffer, "%2e.") || strings.EqualFold(curBuffer, "%2e%2e")
			isDot := curBuffer == "." || strings.EqualFold(curBuffer, "%2e")

			switch {
			case isDotDot:
				p.path = p.path.shorten(p.scheme)
				if !atSeparator {
					p.path = p.path.append("")
				}
			case isDot && !atSeparator:
				p.path = p.path.append("")
			case !isDot:
				if p.scheme == "file" && !p.path.IsOpaque() && p.path.isEmpty() && isWindowsDriveLetter(curBuffer) {
					b := []rune(curBuffer)
					b[1] = ':'
					curBuffer = string(b)
				}
				p.path = p.path.append(curBuffer)
			}
			p.buffer = nil

			switch {
			case pa.Is('?'):
				p.query = new(strings.Builder)
				p.state = stateQuery
			case pa.Is('#'):
				p.fragment = new(strings.Builder)
				p.state = stateFragment
			}
		} else if pa.IsCodePoint() {
			c := pa.CodePoint
			if !charset.URLCodePoint(c) && c != '%' {
				p.warn(diag.InvalidURLUnit)
			}
			if c == '%' && !p.cur.DoesRemainingStartWith("%d%d") {
				p.warn(diag.InvalidURLUnit)
			}
			p.buffer = append(p.buffer, []rune(percent.EncodeCodePoint(c, charset.Path))...)
		}

	case stateOpaquePath:
		switch {
		case pa.Is('?'):
			p.query = new(strings.Builder)
			p.state = stateQuery
		case pa.Is('#'):
			p.fragment = new(strings.Builder)
			p.state = stateFragment
		case pa.IsCodePoint():
			c := pa.CodePoint
			if !charset.URLCodePoint(c) && c != '%' {
				p.warn(diag.InvalidURLUnit)
			}
			if c == '%' && !p.cur.DoesRemainingStartWith("%d%d") {
				p.warn(diag.InvalidURLUnit)
			}
			p.path = p.path.append(percent.EncodeCodePoint(c, charset.C0Control))
		}

	case stateQuery:
		if pa.IsEof() || pa.Is('#') {
			set := charset.Query
			if isSpecial(p.scheme) {
				set = charset.SpecialQuery
			}
			p.query.WriteString(percent.Encode(string(p.buffer), set, false))
			p.buffer = nil
			if pa.Is('#') {
				p.fragment = new(strings.Builder)
				p.state = stateFragment
			}
		} else if pa.IsCodePoint() {
			c := pa.CodePoint
			if !charset.URLCodePoint(c) && c != '%' {
				p.warn(diag.InvalidURLUnit)
			}
			if c == '%' && !p.cur.DoesRemainingStartWith("%d%d") {
				p.warn(diag.InvalidURLUnit)
			}
			p.buffer = append(p.buffer, c)
		}

	case stateFragment:
		if pa.IsCodePoint() {
			c := pa.CodePoint
			if !charset.URLCodePoint(c) && c != '%' {
				p.warn(diag.InvalidURLUnit)
			}
			if c == '%' && !p.cur.DoesRemainingStartWith("%d%d") {
				p.warn(diag.InvalidURLUnit)
			}
			p.fragment.WriteString(percent.EncodeCodePoint(c, charset.Fragment))
		}
	}
}

// copyBuilder returns a new *strings.Builder seeded with *src's content,
// or nil if src is nil — used to carry a base URL's optional query into
// a relative parse without aliasing it.
func copyBuilder(src *string) *strings.Builder {
	if src == nil {
		return nil
	}
	b := new(strings.Builder)
	b.WriteString(*src)
	return b
}
