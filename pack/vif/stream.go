package vif

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/bgda-tools/bgda_browser/ps2/gif"
	ps2_vif "github.com/bgda-tools/bgda_browser/ps2/vif"
	"github.com/bgda-tools/bgda_browser/utils"
)

// microprograms the mesh renderer is known to use
var knownMicroprograms = map[uint16]bool{66: true, 68: true, 70: true}

type streamDecoder struct {
	data     []byte
	end      int
	current  *Chunk
	pending  *Chunk // last sealed chunk, receives uvs uploaded after MSCAL
	chunks   []*Chunk
	warnings []FormatWarning
	log      *utils.Logger
}

// DecodeChunks walks the command stream in data[offset:end].
// A chunk still open when the stream ends is never invoked and is dropped.
func DecodeChunks(data []byte, offset, end int, exlog *utils.Logger) ([]*Chunk, []FormatWarning, error) {
	if end > len(data) {
		end = len(data)
	}
	sd := &streamDecoder{
		data:    data,
		end:     end,
		current: &Chunk{},
		chunks:  make([]*Chunk, 0, 8),
		log:     exlog,
	}

	for offset < sd.end {
		code := ps2_vif.NewCode(utils.LEUint32(data, offset))
		sd.log.Printf("%.6x %v", offset, code)

		var err error
		switch code.Cmd() {
		case ps2_vif.VIF_CMD_NOP, ps2_vif.VIF_CMD_STCYCL, ps2_vif.VIF_CMD_ITOP, ps2_vif.VIF_CMD_STMOD:
			offset += 4
		case ps2_vif.VIF_CMD_STMASK:
			offset += 8
		case ps2_vif.VIF_CMD_MSCAL:
			sd.seal(offset, code.Imm())
			offset += 4
		default:
			if !code.IsUnpack() {
				return nil, sd.warnings, errors.Wrapf(ErrUnsupportedOpcode, "0x%.2x at 0x%.6x", code.Cmd(), offset)
			}
			offset, err = sd.unpack(offset+4, code)
			if err != nil {
				return nil, sd.warnings, err
			}
		}
	}

	return sd.chunks, sd.warnings, nil
}

func (sd *streamDecoder) warn(offset int, format string, args ...interface{}) {
	w := FormatWarning{Offset: offset, Message: fmt.Sprintf(format, args...)}
	sd.log.Printf("warning: %v", w)
	sd.warnings = append(sd.warnings, w)
}

func (sd *streamDecoder) seal(offset int, mscal uint16) {
	if !knownMicroprograms[mscal] {
		sd.warn(offset, "Microprogram %d not supported", mscal)
	}
	sd.current.MscalID = mscal
	sd.chunks = append(sd.chunks, sd.current)
	sd.pending = sd.current
	sd.current = &Chunk{}
}

func (sd *streamDecoder) unpack(offset int, code ps2_vif.VifCode) (int, error) {
	data := sd.data
	c := sd.current
	count := int(code.Num())

	switch code.Format() {
	case ps2_vif.UNPACK_V2_16:
		if sd.pending == nil {
			sd.log.Printf("  %d uvs before first MSCAL skipped", count)
			return offset + count*4, nil
		}
		for i := 0; i < count; i++ {
			sd.pending.UVs = append(sd.pending.UVs, UV{
				U: utils.LEInt16(data, offset),
				V: utils.LEInt16(data, offset+2),
			})
			offset += 4
		}
		return offset, nil
	case ps2_vif.UNPACK_V3_16:
		for i := 0; i < count; i++ {
			if code.Unsigned() {
				c.VLocs = append(c.VLocs, VLoc{
					V1: utils.LEUint16(data, offset),
					V2: utils.LEUint16(data, offset+2),
					V3: utils.LEUint16(data, offset+4),
				})
			} else {
				c.Vertices = append(c.Vertices, RawVertex{
					X: utils.LEInt16(data, offset),
					Y: utils.LEInt16(data, offset+2),
					Z: utils.LEInt16(data, offset+4),
				})
			}
			offset += 6
		}
		return (offset + 3) &^ 3, nil
	case ps2_vif.UNPACK_V3_8:
		for i := 0; i < count; i++ {
			p := offset + i*3
			c.Normals = append(c.Normals, RawNormal{
				X: utils.Int8(data, p),
				Y: utils.Int8(data, p+1),
				Z: utils.Int8(data, p+2),
			})
		}
		return offset + ((count*3)+3)&^3, nil
	case ps2_vif.UNPACK_V4_32:
		switch count {
		case 2:
			tag := gif.NewTag(sliceAt(data, offset+gif.TAG_SIZE, gif.TAG_SIZE))
			c.GifTag1 = &tag
			fallthrough
		case 1:
			tag := gif.NewTag(sliceAt(data, offset, gif.TAG_SIZE))
			c.GifTag0 = &tag
			sd.log.Printf("  %v", tag)
		default:
			sd.warn(offset, "Expected 1 or 2 gif tags, got %d", count)
		}
		return offset + count*gif.TAG_SIZE, nil
	case ps2_vif.UNPACK_V4_16:
		if code.Unsigned() {
			c.ExtraVLocs = make([]uint16, count*4)
			for i := range c.ExtraVLocs {
				c.ExtraVLocs[i] = utils.LEUint16(data, offset+i*2)
			}
		}
		return offset + count*8, nil
	case ps2_vif.UNPACK_V4_8:
		return sd.unpackWeights(offset, count), nil
	}
	return 0, errors.Wrapf(ErrUnsupportedFormat, "vn=%d vl=%d at 0x%.6x", code.VN(), code.VL(), offset-4)
}

// Weight records are 4 bytes each: bone*4, weight, then either 0xff and a
// vertex run length, or a second bone and weight for a single vertex. When the
// first two weights do not sum to 255 the next record holds bones three and four.
func (sd *streamDecoder) unpackWeights(offset int, count int) int {
	data := sd.data
	next := func() int {
		b := int(utils.SafeByte(data, offset))
		offset++
		return b
	}

	vertex := 0
	for i := 0; i < count; i++ {
		vw := NewVertexWeight(vertex)
		vw.Bones[0] = next() / 4
		vw.Weights[0] = next()
		if bone := next(); bone == 0xff {
			vertex += next()
		} else {
			vw.Bones[1] = bone / 4
			vw.Weights[1] = next()
			vertex++

			if vw.Weights[0]+vw.Weights[1] < 255 {
				i++
				vw.Bones[2] = next() / 4
				vw.Weights[2] = next()
				bone4, weight4 := next(), next()
				if bone4 != NoBone {
					vw.Bones[3] = bone4 / 4
					vw.Weights[3] = weight4
				}
			}
		}
		vw.EndVertex = vertex - 1
		sd.current.Weights = append(sd.current.Weights, vw)
	}
	return offset
}

func sliceAt(data []byte, offset, size int) []byte {
	if offset >= len(data) {
		return nil
	}
	if offset+size > len(data) {
		return data[offset:]
	}
	return data[offset : offset+size]
}
