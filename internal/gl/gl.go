// SPDX-License-Identifier: Unlicense OR MIT

package gl

type (
	Attrib uint
	Enum   uint
)

const (
	ALWAYS                           = 0x207
	ARRAY_BUFFER                     = 0x8892
	BACK                             = 0x0405
	BLEND                            = 0xbe2
	BLEND_COLOR                      = 0x8005
	BYTE                             = 0x1400
	CCW                              = 0x0901
	CLAMP_TO_EDGE                    = 0x812f
	COLOR_ATTACHMENT0                = 0x8ce0
	COLOR_BUFFER_BIT                 = 0x4000
	COMPILE_STATUS                   = 0x8b81
	CONSTANT_ALPHA                   = 0x8003
	CONSTANT_COLOR                   = 0x8001
	CULL_FACE                        = 0xb44
	CW                               = 0x0900
	DECR                             = 0x1e03
	DECR_WRAP                        = 0x8508
	DEPTH_ATTACHMENT                 = 0x8d00
	DEPTH_BUFFER_BIT                 = 0x100
	DEPTH_COMPONENT16                = 0x81a5
	DEPTH_COMPONENT24                = 0x81a6
	DEPTH_STENCIL_ATTACHMENT         = 0x821a
	DEPTH24_STENCIL8                 = 0x88f0
	DEPTH_TEST                       = 0xb71
	DONT_CARE                        = 0x1100
	DRAW_FRAMEBUFFER                 = 0x8ca9
	DST_ALPHA                        = 0x304
	DST_COLOR                        = 0x306
	DYNAMIC_DRAW                     = 0x88e8
	ELEMENT_ARRAY_BUFFER             = 0x8893
	EQUAL                            = 0x202
	EXTENSIONS                       = 0x1f03
	FALSE                            = 0
	FILL                             = 0x1b02
	FLOAT                            = 0x1406
	FRAGMENT_SHADER                  = 0x8b30
	FRAMEBUFFER                      = 0x8d40
	FRAMEBUFFER_COMPLETE             = 0x8cd5
	FRAMEBUFFER_INCOMPLETE_ATTACH    = 0x8cd6
	FRAMEBUFFER_INCOMPLETE_MISSING   = 0x8cd7
	FRAMEBUFFER_INCOMPLETE_MULTISAMP = 0x8d56
	FRAMEBUFFER_UNSUPPORTED          = 0x8cdd
	FRONT                            = 0x0404
	FRONT_AND_BACK                   = 0x0408
	FUNC_ADD                         = 0x8006
	FUNC_REVERSE_SUBTRACT            = 0x800b
	FUNC_SUBTRACT                    = 0x800a
	GEQUAL                           = 0x206
	GREATER                          = 0x204
	HALF_FLOAT                       = 0x140b
	HALF_FLOAT_OES                   = 0x8d61
	INCR                             = 0x1e02
	INCR_WRAP                        = 0x8507
	INFO_LOG_LENGTH                  = 0x8b84
	INVERT                           = 0x150a
	KEEP                             = 0x1e00
	LEQUAL                           = 0x203
	LESS                             = 0x201
	LINE                             = 0x1b01
	LINEAR                           = 0x2601
	LINEAR_MIPMAP_LINEAR             = 0x2703
	LINEAR_MIPMAP_NEAREST            = 0x2701
	LINES                            = 0x1
	LINE_STRIP                       = 0x3
	LINK_STATUS                      = 0x8b82
	LUMINANCE                        = 0x1909
	MAX                              = 0x8008
	MAX_COLOR_ATTACHMENTS            = 0x8cdf
	MAX_DRAW_BUFFERS                 = 0x8824
	MAX_SAMPLES                      = 0x8d57
	MAX_TEXTURE_IMAGE_UNITS          = 0x8872
	MAX_TEXTURE_MAX_ANISOTROPY_EXT   = 0x84ff
	MAX_TEXTURE_SIZE                 = 0xd33
	MAX_VERTEX_ATTRIBS               = 0x8869
	MIN                              = 0x8007
	MIRRORED_REPEAT                  = 0x8370
	NEAREST                          = 0x2600
	NEAREST_MIPMAP_LINEAR            = 0x2702
	NEAREST_MIPMAP_NEAREST           = 0x2700
	NEVER                            = 0x200
	NONE                             = 0x0
	NOTEQUAL                         = 0x205
	NO_ERROR                         = 0x0
	NUM_EXTENSIONS                   = 0x821d
	ONE                              = 0x1
	ONE_MINUS_CONSTANT_COLOR         = 0x8002
	ONE_MINUS_DST_ALPHA              = 0x305
	ONE_MINUS_DST_COLOR              = 0x307
	ONE_MINUS_SRC_ALPHA              = 0x303
	ONE_MINUS_SRC_COLOR              = 0x301
	PACK_ALIGNMENT                   = 0xd05
	POLYGON_OFFSET_FILL              = 0x8037
	QUERY_RESULT                     = 0x8866
	QUERY_RESULT_AVAILABLE           = 0x8867
	R16F                             = 0x822d
	R32F                             = 0x822e
	R8                               = 0x8229
	READ_FRAMEBUFFER                 = 0x8ca8
	RED                              = 0x1903
	RENDERBUFFER                     = 0x8d41
	RENDERER                         = 0x1f01
	REPEAT                           = 0x2901
	REPLACE                          = 0x1e01
	RGB                              = 0x1907
	RGB565                           = 0x8d62
	RGBA                             = 0x1908
	RGBA16F                          = 0x881a
	RGBA32F                          = 0x8814
	RGBA4                            = 0x8056
	RGBA8                            = 0x8058
	SAMPLES_PASSED                   = 0x8914
	ANY_SAMPLES_PASSED               = 0x8c2f
	SCISSOR_TEST                     = 0xc11
	SHORT                            = 0x1402
	SRC_ALPHA                        = 0x302
	SRC_ALPHA_SATURATE               = 0x308
	SRC_COLOR                        = 0x300
	SRGB8_ALPHA8                     = 0x8c43
	SRGB_ALPHA_EXT                   = 0x8c42
	STATIC_DRAW                      = 0x88e4
	STENCIL_ATTACHMENT               = 0x8d20
	STENCIL_BUFFER_BIT               = 0x400
	STENCIL_INDEX8                   = 0x8d48
	STENCIL_TEST                     = 0xb90
	TEXTURE_2D                       = 0xde1
	TEXTURE_CUBE_MAP                 = 0x8513
	TEXTURE_CUBE_MAP_POSITIVE_X      = 0x8515
	TEXTURE_MAG_FILTER               = 0x2800
	TEXTURE_MAX_ANISOTROPY_EXT       = 0x84fe
	TEXTURE_MAX_LEVEL                = 0x813d
	TEXTURE_MIN_FILTER               = 0x2801
	TEXTURE_WRAP_S                   = 0x2802
	TEXTURE_WRAP_T                   = 0x2803
	TEXTURE0                         = 0x84c0
	TRIANGLES                        = 0x4
	TRIANGLE_STRIP                   = 0x5
	TRUE                             = 1
	UNPACK_ALIGNMENT                 = 0xcf5
	UNSIGNED_BYTE                    = 0x1401
	UNSIGNED_INT                     = 0x1405
	UNSIGNED_SHORT                   = 0x1403
	UNSIGNED_SHORT_5_6_5             = 0x8363
	VENDOR                           = 0x1f00
	VERSION                          = 0x1f02
	VERTEX_SHADER                    = 0x8b31
	ZERO                             = 0x0
)
