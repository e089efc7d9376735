package fax

// code is a variable-length bit code written most significant bit first.
type code struct {
	length int    // 1 <= length <= 13
	value  uint16 // the low length bits hold the code
}

var (
	eolCode        = code{12, 0x001} // 000000000001
	passCode       = code{4, 0x1}    // 0001
	horizontalCode = code{3, 0x1}    // 001
)

// verticalCodes is indexed by a1-b1+3.
var verticalCodes = [7]code{
	{7, 0x02}, // VL3 0000010
	{6, 0x02}, // VL2 000010
	{3, 0x02}, // VL1 010
	{1, 0x01}, // V0  1
	{3, 0x03}, // VR1 011
	{6, 0x03}, // VR2 000011
	{7, 0x03}, // VR3 0000011
}

// Terminating codes, ITU-T T.4 table 2, indexed by run length 0..63.
var whiteTerminating = [64]code{
	{8, 0x35}, {6, 0x07}, {4, 0x07}, {4, 0x08}, {4, 0x0b}, {4, 0x0c}, {4, 0x0e}, {4, 0x0f},
	{5, 0x13}, {5, 0x14}, {5, 0x07}, {5, 0x08}, {6, 0x08}, {6, 0x03}, {6, 0x34}, {6, 0x35},
	{6, 0x2a}, {6, 0x2b}, {7, 0x27}, {7, 0x0c}, {7, 0x08}, {7, 0x17}, {7, 0x03}, {7, 0x04},
	{7, 0x28}, {7, 0x2b}, {7, 0x13}, {7, 0x24}, {7, 0x18}, {8, 0x02}, {8, 0x03}, {8, 0x1a},
	{8, 0x1b}, {8, 0x12}, {8, 0x13}, {8, 0x14}, {8, 0x15}, {8, 0x16}, {8, 0x17}, {8, 0x28},
	{8, 0x29}, {8, 0x2a}, {8, 0x2b}, {8, 0x2c}, {8, 0x2d}, {8, 0x04}, {8, 0x05}, {8, 0x0a},
	{8, 0x0b}, {8, 0x52}, {8, 0x53}, {8, 0x54}, {8, 0x55}, {8, 0x24}, {8, 0x25}, {8, 0x58},
	{8, 0x59}, {8, 0x5a}, {8, 0x5b}, {8, 0x4a}, {8, 0x4b}, {8, 0x32}, {8, 0x33}, {8, 0x34},
}

var blackTerminating = [64]code{
	{10, 0x37}, {3, 0x02}, {2, 0x03}, {2, 0x02}, {3, 0x03}, {4, 0x03}, {4, 0x02}, {5, 0x03},
	{6, 0x05}, {6, 0x04}, {7, 0x04}, {7, 0x05}, {7, 0x07}, {8, 0x04}, {8, 0x07}, {9, 0x18},
	{10, 0x17}, {10, 0x18}, {10, 0x08}, {11, 0x67}, {11, 0x68}, {11, 0x6c}, {11, 0x37}, {11, 0x28},
	{11, 0x17}, {11, 0x18}, {12, 0xca}, {12, 0xcb}, {12, 0xcc}, {12, 0xcd}, {12, 0x68}, {12, 0x69},
	{12, 0x6a}, {12, 0x6b}, {12, 0xd2}, {12, 0xd3}, {12, 0xd4}, {12, 0xd5}, {12, 0xd6}, {12, 0xd7},
	{12, 0x6c}, {12, 0x6d}, {12, 0xda}, {12, 0xdb}, {12, 0x54}, {12, 0x55}, {12, 0x56}, {12, 0x57},
	{12, 0x64}, {12, 0x65}, {12, 0x52}, {12, 0x53}, {12, 0x24}, {12, 0x37}, {12, 0x38}, {12, 0x27},
	{12, 0x28}, {12, 0x58}, {12, 0x59}, {12, 0x2b}, {12, 0x2c}, {12, 0x5a}, {12, 0x66}, {12, 0x67},
}

// Make-up codes, ITU-T T.4 tables 3a and 3b, indexed by run length / 64.
// Index 0 is unused. Entries 28..40 (1792..2560) are shared by both colors.
var whiteMakeup = [41]code{
	{},
	{5, 0x1b}, {5, 0x12}, {6, 0x17}, {7, 0x37}, {8, 0x36}, {8, 0x37}, {8, 0x64}, {8, 0x65},
	{8, 0x68}, {8, 0x67}, {9, 0xcc}, {9, 0xcd}, {9, 0xd2}, {9, 0xd3}, {9, 0xd4}, {9, 0xd5},
	{9, 0xd6}, {9, 0xd7}, {9, 0xd8}, {9, 0xd9}, {9, 0xda}, {9, 0xdb}, {9, 0x98}, {9, 0x99},
	{9, 0x9a}, {6, 0x18}, {9, 0x9b},
	{11, 0x08}, {11, 0x0c}, {11, 0x0d}, {12, 0x12}, {12, 0x13}, {12, 0x14}, {12, 0x15},
	{12, 0x16}, {12, 0x17}, {12, 0x1c}, {12, 0x1d}, {12, 0x1e}, {12, 0x1f},
}

var blackMakeup = [41]code{
	{},
	{10, 0x0f}, {12, 0xc8}, {12, 0xc9}, {12, 0x5b}, {12, 0x33}, {12, 0x34}, {12, 0x35}, {13, 0x6c},
	{13, 0x6d}, {13, 0x4a}, {13, 0x4b}, {13, 0x4c}, {13, 0x4d}, {13, 0x72}, {13, 0x73}, {13, 0x74},
	{13, 0x75}, {13, 0x76}, {13, 0x77}, {13, 0x52}, {13, 0x53}, {13, 0x54}, {13, 0x55}, {13, 0x5a},
	{13, 0x5b}, {13, 0x64}, {13, 0x65},
	{11, 0x08}, {11, 0x0c}, {11, 0x0d}, {12, 0x12}, {12, 0x13}, {12, 0x14}, {12, 0x15},
	{12, 0x16}, {12, 0x17}, {12, 0x1c}, {12, 0x1d}, {12, 0x1e}, {12, 0x1f},
}

// maxMakeupRun is the longest run a single make-up code can express.
const maxMakeupRun = 2560
