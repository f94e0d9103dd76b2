package constant

// AudioSampleRate is samples per second for synthesized cues
const AudioSampleRate = 44100
